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

// Table creation priorities, lower first.
const (
	PriorityCore         = 10
	PriorityWork         = 20
	PriorityConversation = 30
	PriorityAssociation  = 40
)

// Models returns every persisted model with its creation priority.
func Models() map[interface{}]int {
	return map[interface{}]int{
		(*Team)(nil):               PriorityCore,
		(*User)(nil):               PriorityCore + 1,
		(*Form)(nil):               PriorityCore + 2,
		(*Report)(nil):             PriorityWork,
		(*Project)(nil):            PriorityWork + 1,
		(*Ticket)(nil):             PriorityWork + 2,
		(*Chat)(nil):               PriorityConversation,
		(*Message)(nil):            PriorityConversation + 1,
		(*ProjectApproval)(nil):    PriorityAssociation,
		(*ProjectAnalyst)(nil):     PriorityAssociation,
		(*ProjectSponsor)(nil):     PriorityAssociation,
		(*ProjectOwner)(nil):       PriorityAssociation,
		(*ProjectClient)(nil):      PriorityAssociation,
		(*ProjectAllowedUser)(nil): PriorityAssociation,
		(*TicketAttendant)(nil):    PriorityAssociation,
		(*TicketTeam)(nil):         PriorityAssociation,
		(*ReportAllowedUser)(nil):  PriorityAssociation,
		(*UserReportFollow)(nil):   PriorityAssociation,
		(*UserProjectFollow)(nil):  PriorityAssociation,
		(*UserTicketFollow)(nil):   PriorityAssociation,
	}
}
