package playback

// Guard messages. Every unmet precondition maps to exactly one of these;
// callers send the returned message and abort the command.
const (
	MsgNoEncryption = "Voice cannot be used because transport encryption support is not available."
	MsgNoOpus       = "Voice cannot be used because the Opus encoder is not loaded and attempting to load the default failed."
	MsgNotConnected = "Not connected to a voice channel in this guild."
	MsgNotPlaying   = "The voice client in this guild is not playing anything."
)

// Session is the slice of player state the guards inspect.
type Session interface {
	Connected() bool
	Playing() bool
}

// CapabilityCheck verifies the voice stack can be used at all: encryption
// support present and the Opus encoder loadable. Returns "" when met.
func CapabilityCheck() string {
	if !hasEncryption {
		return MsgNoEncryption
	}
	if err := loadOpus(); err != nil {
		return MsgNoOpus
	}
	return ""
}

// ConnectedCheck verifies an active voice session exists for the guild.
func ConnectedCheck(s Session) string {
	if s == nil || !s.Connected() {
		return MsgNotConnected
	}
	return ""
}

// PlayingCheck verifies an audio source is active. It runs ConnectedCheck
// first and so doubles as a connection check.
func PlayingCheck(s Session) string {
	if msg := ConnectedCheck(s); msg != "" {
		return msg
	}
	if !s.Playing() {
		return MsgNotPlaying
	}
	return ""
}
