package bot

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/bwmarrin/discordgo"
)

// ErrForbidden marks a send rejected for lack of permissions. Retrying the
// same channel in the same batch is pointless until the guild is
// reconfigured, so callers abort the remaining sends for that channel only.
var ErrForbidden = errors.New("missing permission to send")

const (
	codeMissingAccess      = 50001
	codeMissingPermissions = 50013
)

// Dispatcher sends embeds and messages, translating platform errors into the
// two classes callers care about: permission failures and everything else.
type Dispatcher struct {
	session *discordgo.Session
}

func NewDispatcher(session *discordgo.Session) *Dispatcher {
	return &Dispatcher{session: session}
}

func (d *Dispatcher) SendEmbed(channelID string, embed *discordgo.MessageEmbed) error {
	_, err := d.session.ChannelMessageSendEmbed(channelID, embed)
	return classifySendError(err)
}

func (d *Dispatcher) SendMessage(channelID, content string) error {
	_, err := d.session.ChannelMessageSend(channelID, content)
	return classifySendError(err)
}

func (d *Dispatcher) SendComplex(channelID string, data *discordgo.MessageSend) error {
	_, err := d.session.ChannelMessageSendComplex(channelID, data)
	return classifySendError(err)
}

func classifySendError(err error) error {
	if err == nil {
		return nil
	}

	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) {
		if restErr.Message != nil &&
			(restErr.Message.Code == codeMissingAccess || restErr.Message.Code == codeMissingPermissions) {
			return fmt.Errorf("%w: %s", ErrForbidden, restErr.Message.Message)
		}
		if restErr.Response != nil && restErr.Response.StatusCode == http.StatusForbidden {
			return fmt.Errorf("%w: http %d", ErrForbidden, restErr.Response.StatusCode)
		}
	}

	return fmt.Errorf("failed to send message: %w", err)
}
