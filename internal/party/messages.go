package party

// Status messages shared by the HTTP and gRPC surfaces.
const (
	MsgSuccess  = "Success"
	MsgGameOver = "Game Over"
	MsgReset    = "Game Reset"
	MsgOK       = "OK"
	MsgUpdated  = "Updated"
	MsgWaiting  = "Waiting for participants"
)
