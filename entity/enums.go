/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package entity

import "github.com/tomoncle/chamados/types"

// TeamArea is the business area a team belongs to.
type TeamArea string

const (
	AreaEAB        TeamArea = "eab"
	AreaProjects   TeamArea = "projetos"
	AreaCIA        TeamArea = "cia"
	AreaIndicators TeamArea = "indicadores"
)

var teamAreaValues = []TeamArea{AreaEAB, AreaProjects, AreaCIA, AreaIndicators}

func (v TeamArea) IsValid() bool  { return types.ValidEnum(v, teamAreaValues...) }
func (v TeamArea) String() string { return string(v) }

// TeamStatus is the operational status of a team.
type TeamStatus string

const (
	TeamStatusActive        TeamStatus = "ativo"
	TeamStatusSuspended     TeamStatus = "suspenso"
	TeamStatusRestructuring TeamStatus = "reestruturacao"
)

var teamStatusValues = []TeamStatus{TeamStatusActive, TeamStatusSuspended, TeamStatusRestructuring}

func (v TeamStatus) IsValid() bool  { return types.ValidEnum(v, teamStatusValues...) }
func (v TeamStatus) String() string { return string(v) }

// UserRole is the access level of a user.
type UserRole string

const (
	RoleAttendant     UserRole = "atendente"
	RoleRequester     UserRole = "solicitante"
	RoleManager       UserRole = "gestor"
	RoleAdministrator UserRole = "administrador"
)

var userRoleValues = []UserRole{RoleAttendant, RoleRequester, RoleManager, RoleAdministrator}

func (v UserRole) IsValid() bool  { return types.ValidEnum(v, userRoleValues...) }
func (v UserRole) String() string { return string(v) }

// UserTipo is the kind of account.
type UserTipo string

const (
	TipoAttendant     UserTipo = "atendente"
	TipoRequester     UserTipo = "solicitante"
	TipoAdministrator UserTipo = "administrador"
)

var userTipoValues = []UserTipo{TipoAttendant, TipoRequester, TipoAdministrator}

func (v UserTipo) IsValid() bool  { return types.ValidEnum(v, userTipoValues...) }
func (v UserTipo) String() string { return string(v) }

// ReportFrequency is how often a report is refreshed.
type ReportFrequency string

const (
	FrequencyDaily     ReportFrequency = "diario"
	FrequencyHourly    ReportFrequency = "horario"
	FrequencyScheduled ReportFrequency = "agendado"
	FrequencyOnDemand  ReportFrequency = "sob_demanda"
)

var reportFrequencyValues = []ReportFrequency{FrequencyDaily, FrequencyHourly, FrequencyScheduled, FrequencyOnDemand}

func (v ReportFrequency) IsValid() bool  { return types.ValidEnum(v, reportFrequencyValues...) }
func (v ReportFrequency) String() string { return string(v) }

type ReportTag string

const (
	TagCIA         ReportTag = "cia"
	TagCCT         ReportTag = "cct"
	TagProduction  ReportTag = "producao"
	TagSSMA        ReportTag = "ssma"
	TagCCO         ReportTag = "cco"
	TagMaintenance ReportTag = "manutencao"
	TagQuality     ReportTag = "qualidade"
)

var reportTagValues = []ReportTag{TagCIA, TagCCT, TagProduction, TagSSMA, TagCCO, TagMaintenance, TagQuality}

func (v ReportTag) IsValid() bool  { return types.ValidEnum(v, reportTagValues...) }
func (v ReportTag) String() string { return string(v) }

type ReportStatus string

const (
	ReportStatusActive      ReportStatus = "ativo"
	ReportStatusMaintenance ReportStatus = "manutencao"
	ReportStatusOutdated    ReportStatus = "desatualizado"
	ReportStatusTesting     ReportStatus = "teste"
	ReportStatusInactive    ReportStatus = "inativo"
	ReportStatusDevelopment ReportStatus = "desenvolvimento"
	ReportStatusDiagnosis   ReportStatus = "diagnostico"
)

var reportStatusValues = []ReportStatus{ReportStatusActive, ReportStatusMaintenance, ReportStatusOutdated, ReportStatusTesting, ReportStatusInactive, ReportStatusDevelopment, ReportStatusDiagnosis}

func (v ReportStatus) IsValid() bool  { return types.ValidEnum(v, reportStatusValues...) }
func (v ReportStatus) String() string { return string(v) }

// ProjectTag is the schedule tag of a project.
type ProjectTag string

const (
	ProjectTagAssigned ProjectTag = "atribuido"
	ProjectTagLate     ProjectTag = "atrasado"
	ProjectTagOnTime   ProjectTag = "no_prazo"
)

var projectTagValues = []ProjectTag{ProjectTagAssigned, ProjectTagLate, ProjectTagOnTime}

func (v ProjectTag) IsValid() bool  { return types.ValidEnum(v, projectTagValues...) }
func (v ProjectTag) String() string { return string(v) }

type ProjectPriority string

const (
	PriorityMaximum ProjectPriority = "maxima"
	PriorityUrgent  ProjectPriority = "urgente"
	PriorityNormal  ProjectPriority = "normal"
	PriorityBacklog ProjectPriority = "backlog"
)

var projectPriorityValues = []ProjectPriority{PriorityMaximum, PriorityUrgent, PriorityNormal, PriorityBacklog}

func (v ProjectPriority) IsValid() bool  { return types.ValidEnum(v, projectPriorityValues...) }
func (v ProjectPriority) String() string { return string(v) }

type RiskLevel string

const (
	RiskVeryHigh RiskLevel = "muito_alto"
	RiskHigh     RiskLevel = "alto"
	RiskMedium   RiskLevel = "medio"
	RiskLow      RiskLevel = "baixo"
	RiskNone     RiskLevel = "sem_risco"
)

var riskLevelValues = []RiskLevel{RiskVeryHigh, RiskHigh, RiskMedium, RiskLow, RiskNone}

func (v RiskLevel) IsValid() bool  { return types.ValidEnum(v, riskLevelValues...) }
func (v RiskLevel) String() string { return string(v) }

// WorkStatus is the workflow status shared by projects and tickets.
type WorkStatus string

const (
	WorkStatusActive    WorkStatus = "ativo"
	WorkStatusOpen      WorkStatus = "aberto"
	WorkStatusPending   WorkStatus = "pendente"
	WorkStatusPaused    WorkStatus = "pausado"
	WorkStatusClosed    WorkStatus = "encerrado"
	WorkStatusCancelled WorkStatus = "cancelado"
)

var workStatusValues = []WorkStatus{WorkStatusActive, WorkStatusOpen, WorkStatusPending, WorkStatusPaused, WorkStatusClosed, WorkStatusCancelled}

func (v WorkStatus) IsValid() bool  { return types.ValidEnum(v, workStatusValues...) }
func (v WorkStatus) String() string { return string(v) }

// TicketClass tells whether a ticket or form concerns a project or a report.
type TicketClass string

const (
	ClassProject TicketClass = "projeto"
	ClassReport  TicketClass = "relatorio"
)

var ticketClassValues = []TicketClass{ClassProject, ClassReport}

func (v TicketClass) IsValid() bool  { return types.ValidEnum(v, ticketClassValues...) }
func (v TicketClass) String() string { return string(v) }

type TicketType string

const (
	TypeChange      TicketType = "alteracao"
	TypeBug         TicketType = "bug"
	TypeFix         TicketType = "correcao"
	TypeDevelopment TicketType = "desenvolvimento"
	TypeImprovement TicketType = "melhoria"
)

var ticketTypeValues = []TicketType{TypeChange, TypeBug, TypeFix, TypeDevelopment, TypeImprovement}

func (v TicketType) IsValid() bool  { return types.ValidEnum(v, ticketTypeValues...) }
func (v TicketType) String() string { return string(v) }

// ImpactLevel is the reach of a ticket.
type ImpactLevel string

const (
	ImpactVeryHigh ImpactLevel = "muito_alto"
	ImpactHigh     ImpactLevel = "alto"
	ImpactMedium   ImpactLevel = "medio"
	ImpactLow      ImpactLevel = "baixo"
	ImpactNone     ImpactLevel = "sem_impacto"
)

var impactLevelValues = []ImpactLevel{ImpactVeryHigh, ImpactHigh, ImpactMedium, ImpactLow, ImpactNone}

func (v ImpactLevel) IsValid() bool  { return types.ValidEnum(v, impactLevelValues...) }
func (v ImpactLevel) String() string { return string(v) }

type MessageType string

const (
	MessageText         MessageType = "text"
	MessageFile         MessageType = "file"
	MessageSystem       MessageType = "system"
	MessageStatusChange MessageType = "status_change"
)

var messageTypeValues = []MessageType{MessageText, MessageFile, MessageSystem, MessageStatusChange}

func (v MessageType) IsValid() bool  { return types.ValidEnum(v, messageTypeValues...) }
func (v MessageType) String() string { return string(v) }

// ApprovalStatus is the decision of one approver.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pendente"
	ApprovalApproved ApprovalStatus = "aprovado"
	ApprovalRejected ApprovalStatus = "rejeitado"
)

var approvalStatusValues = []ApprovalStatus{ApprovalPending, ApprovalApproved, ApprovalRejected}

func (v ApprovalStatus) IsValid() bool  { return types.ValidEnum(v, approvalStatusValues...) }
func (v ApprovalStatus) String() string { return string(v) }
