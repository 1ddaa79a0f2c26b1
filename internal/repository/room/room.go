package room

import "errors"

var ErrNoState = errors.New("room has no control state")

// ControlState is the last transport command seen in a room. It is
// kept so late joiners can be brought up to the room's position.
type ControlState struct {
	Action  string  `json:"action" redis:"action"`
	Time    float64 `json:"time" redis:"time"`
	VideoId string  `json:"video_id" redis:"video_id"`
}
