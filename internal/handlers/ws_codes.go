package handlers

// Custom WebSocket close codes used by the game handler. These give clients
// more specific reasons for closure than the standard codes.
const (
	BadSubprotocolError = 3000 // client connected with an unsupported subprotocol
	UnknownPlayerError  = 3001 // reconnect attempted with a player ID this game has never seen
)
