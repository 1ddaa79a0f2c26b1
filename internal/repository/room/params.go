package room

type AddMemberParams struct {
	RoomId    string
	SessionId string
}

type RemoveMemberParams struct {
	RoomId    string
	SessionId string
}

type SetControlStateParams struct {
	RoomId string
	State  ControlState
}
