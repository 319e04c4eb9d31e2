package ytplayer

import (
	_ "embed"
	"fmt"
	"strings"
)

// The template carries exactly one substitution marker, replaced verbatim
// with the serialized parameter JSON.
const parametersMarker = "__PLAYER_PARAMETERS__"

//go:embed player.html
var playerTemplate string

func renderPlayerHTML(serializedParams string) (string, error) {
	if !strings.Contains(playerTemplate, parametersMarker) {
		return "", fmt.Errorf("player template is missing the %s marker", parametersMarker)
	}

	return strings.Replace(playerTemplate, parametersMarker, serializedParams, 1), nil
}
