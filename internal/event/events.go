package event

const (
	SERVER_CREATE        = "server.create"
	SERVER_UPDATE        = "server.update"
	SERVER_INVITE_ROTATE = "server.invite_rotate"
	SERVER_JOIN          = "server.join"
	CHANNEL_CREATE       = "channel.create"
)

type ServerCreateMessage struct {
	ServerID  uint   `json:"server_id"`
	ProfileID uint   `json:"profile_id"`
	Name      string `json:"name"`
}

type ServerUpdateMessage struct {
	ServerID uint   `json:"server_id"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
}

// ServerInviteRotateMessage never carries the new code; consumers only learn
// that the previous one is dead.
type ServerInviteRotateMessage struct {
	ServerID uint `json:"server_id"`
}

type ServerJoinMessage struct {
	ServerID  uint   `json:"server_id"`
	ProfileID uint   `json:"profile_id"`
	Role      string `json:"role"`
}

type ChannelCreateMessage struct {
	ServerID  uint   `json:"server_id"`
	ChannelID uint   `json:"channel_id"`
	ProfileID uint   `json:"profile_id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
}
