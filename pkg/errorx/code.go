package errorx

type Code int

var Unknown = Error{Code: 100000, Message: "Request failed"}

const (
	// Common codes
	BadRequest       Code = 100001
	BadResponse      Code = 100002
	PermissionDenied Code = 100003
	NotFound         Code = 100004
	Unauthenticated  Code = 100005
	AlreadyExists    Code = 100006
	Internal         Code = 100007
	Unavailable      Code = 100008

	// Claim codes
	UnknownAction      Code = 200001
	AlreadyCompleted   Code = 200002
	OnCooldown         Code = 200003
	FollowNotVerified  Code = 200004
	LinkRequired       Code = 200005
	LinkInvalid        Code = 200006
	ContentUnavailable Code = 200007
	AuthorMismatch     Code = 200008
	RequirementNotMet  Code = 200009
)
