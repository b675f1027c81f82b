package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Auth base; the client's AUTH_BASE_URL points here
	RouteAuthBase = "/auth"

	// Auth Routes
	RouteAuthLogin   = RouteAuthBase + "/login"
	RouteAuthLogout  = RouteAuthBase + "/logout"
	RouteAuthRefresh = RouteAuthBase + "/refresh"
	RouteAuthProfile = RouteAuthBase + "/profile"

	// Location lookups
	RouteLocationStates = "/locations/states"
	RouteLocationCities = "/locations/states/{stateID}/cities"

	// Chat
	RouteChatMessages = "/chats/{conversationID}/messages"
	RouteChatStream   = "/chats/{conversationID}/stream"

	// Health
	RouteHealth = "/healthz"
)
