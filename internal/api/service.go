package api

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "eventhub.v1.EventHub"

// Method names.
const (
	MethodPing         = "Ping"
	MethodSignUp       = "SignUp"
	MethodSignIn       = "SignIn"
	MethodRefreshToken = "RefreshToken"
	MethodSignOut      = "SignOut"

	MethodGetAccount    = "GetAccount"
	MethodUpdateAccount = "UpdateAccount"
	MethodDeleteAccount = "DeleteAccount"
	MethodListAccounts  = "ListAccounts"

	MethodCreateEvent        = "CreateEvent"
	MethodUpdateEvent        = "UpdateEvent"
	MethodDeleteEvent        = "DeleteEvent"
	MethodGetEvent           = "GetEvent"
	MethodListEvents         = "ListEvents"
	MethodRegisterForEvent   = "RegisterForEvent"
	MethodCancelRegistration = "CancelRegistration"
	MethodListRegistrants    = "ListRegistrants"
	MethodAddCoordinator     = "AddCoordinator"
	MethodRemoveCoordinator  = "RemoveCoordinator"
	MethodListCoordinators   = "ListCoordinators"
	MethodRegisteredEvents   = "RegisteredEvents"
	MethodCoordinatedEvents  = "CoordinatedEvents"

	MethodUploadURL   = "UploadURL"
	MethodDownloadURL = "DownloadURL"
)

// FullMethod returns the gRPC path of method, e.g. /eventhub.v1.EventHub/Ping.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// PublicMethods can be called without an access token.
var PublicMethods = map[string]bool{
	FullMethod(MethodPing):             true,
	FullMethod(MethodSignUp):           true,
	FullMethod(MethodSignIn):           true,
	FullMethod(MethodRefreshToken):     true,
	FullMethod(MethodGetEvent):         true,
	FullMethod(MethodListEvents):       true,
	FullMethod(MethodListCoordinators): true,
}
