package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Lookup and transport errors
	CodeNotFound           Code = "NOT_FOUND"
	CodeNetworkUnavailable Code = "NETWORK_UNAVAILABLE"

	// User errors
	CodeUserEmptyEmail Code = "USER_EMPTY_EMAIL"

	// Project errors
	CodeProjectEmptyID             Code = "PROJECT_EMPTY_ID"
	CodeProjectEmptyName           Code = "PROJECT_EMPTY_NAME"
	CodeProjectDuplicateCollab     Code = "PROJECT_DUPLICATE_COLLABORATOR"
	CodeProjectOwnerMissing        Code = "PROJECT_OWNER_MISSING"
	CodeProjectGoalIndexOutOfRange Code = "PROJECT_GOAL_INDEX_OUT_OF_RANGE"
	CodeGoalInvalidStatus          Code = "GOAL_INVALID_STATUS"

	// Invitation errors
	CodeInviteEmptyProjectID    Code = "INVITE_EMPTY_PROJECT_ID"
	CodeInviteEmptyInviterEmail Code = "INVITE_EMPTY_INVITER_EMAIL"
	CodeInviteEmptyInviteeEmail Code = "INVITE_EMPTY_INVITEE_EMAIL"
	CodeInviteSelfInvite        Code = "INVITE_SELF_INVITE"
	CodeInviteDuplicatePending  Code = "INVITE_DUPLICATE_PENDING"
	CodeInviteInvalidTransition Code = "INVITE_INVALID_TRANSITION"
	CodeInviteAcceptIncomplete  Code = "INVITE_ACCEPT_INCOMPLETE"

	// Organization errors
	CodeOrganizationEmptyName       Code = "ORGANIZATION_EMPTY_NAME"
	CodeOrganizationEmptyInviteCode Code = "ORGANIZATION_EMPTY_INVITE_CODE"

	// Matching errors
	CodeMatchServiceUnavailable Code = "MATCH_SERVICE_UNAVAILABLE"
	CodeMatchEmptyQuery         Code = "MATCH_EMPTY_QUERY"

	// Session errors
	CodeSessionTokenInvalid Code = "SESSION_TOKEN_INVALID"
	CodeSessionTokenExpired Code = "SESSION_TOKEN_EXPIRED"

	// Chat errors
	CodeChatEmptySender  Code = "CHAT_EMPTY_SENDER"
	CodeChatEmptyContent Code = "CHAT_EMPTY_CONTENT"

	// Task generation errors
	CodeTaskGenEmptyTask   Code = "TASKGEN_EMPTY_TASK"
	CodeTaskGenUnavailable Code = "TASKGEN_UNAVAILABLE"

	// Storage errors
	CodeSnapshotUnavailable Code = "SNAPSHOT_UNAVAILABLE"
)

// HTTPStatus maps the error code to the HTTP status the backend uses for it.
// Unmapped codes report as 500.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeInviteInvalidTransition, CodeInviteDuplicatePending:
		return http.StatusConflict
	case CodeUserEmptyEmail,
		CodeProjectEmptyID,
		CodeProjectEmptyName,
		CodeProjectDuplicateCollab,
		CodeProjectOwnerMissing,
		CodeProjectGoalIndexOutOfRange,
		CodeGoalInvalidStatus,
		CodeInviteEmptyProjectID,
		CodeInviteEmptyInviterEmail,
		CodeInviteEmptyInviteeEmail,
		CodeInviteSelfInvite,
		CodeOrganizationEmptyName,
		CodeOrganizationEmptyInviteCode,
		CodeMatchEmptyQuery,
		CodeChatEmptySender,
		CodeChatEmptyContent,
		CodeTaskGenEmptyTask:
		return http.StatusBadRequest
	case CodeSessionTokenInvalid, CodeSessionTokenExpired:
		return http.StatusUnauthorized
	case CodeNetworkUnavailable, CodeMatchServiceUnavailable, CodeTaskGenUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
