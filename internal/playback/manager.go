package playback

import (
	"errors"
	"sync"

	"github.com/bwmarrin/discordgo"
)

// ErrNoVoiceState is returned when a user is not in any voice channel.
var ErrNoVoiceState = errors.New("user not in any voice channel")

// Manager hands out one Player per guild.
type Manager struct {
	dg *discordgo.Session

	mu      sync.Mutex
	players map[string]*Player
}

func NewManager(dg *discordgo.Session) *Manager {
	return &Manager{
		dg:      dg,
		players: make(map[string]*Player),
	}
}

// Get returns the guild's player, creating it on first use.
func (m *Manager) Get(guildID string) *Player {
	m.mu.Lock()
	defer m.mu.Unlock()

	if p, ok := m.players[guildID]; ok {
		return p
	}
	p := newPlayer(m.dg, guildID)
	m.players[guildID] = p
	return p
}

// FindUserVoiceChannel returns the voice channel the user currently occupies
// in the guild, or ErrNoVoiceState.
func (m *Manager) FindUserVoiceChannel(guildID, userID string) (string, error) {
	guild, err := m.dg.State.Guild(guildID)
	if err != nil {
		return "", err
	}
	for _, vs := range guild.VoiceStates {
		if vs.UserID == userID {
			return vs.ChannelID, nil
		}
	}
	return "", ErrNoVoiceState
}
