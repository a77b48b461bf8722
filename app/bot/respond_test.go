package bot

import (
	"testing"

	"github.com/bwmarrin/discordgo"
)

func TestHasManageGuild(t *testing.T) {
	cases := []struct {
		name        string
		interaction *discordgo.InteractionCreate
		expected    bool
	}{
		{
			"manage server permission",
			interactionWithPermissions(discordgo.PermissionManageServer),
			true,
		},
		{
			"manage server among others",
			interactionWithPermissions(discordgo.PermissionManageServer | discordgo.PermissionSendMessages),
			true,
		},
		{
			"plain member",
			interactionWithPermissions(discordgo.PermissionSendMessages),
			false,
		},
		{
			"no member (DM interaction)",
			&discordgo.InteractionCreate{Interaction: &discordgo.Interaction{}},
			false,
		},
	}

	for _, c := range cases {
		if got := HasManageGuild(c.interaction); got != c.expected {
			t.Errorf("%s: HasManageGuild() = %v, expected %v", c.name, got, c.expected)
		}
	}
}

func interactionWithPermissions(perms int64) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Member: &discordgo.Member{Permissions: perms},
		},
	}
}
