package ytplayer

import (
	"encoding/json"
	"fmt"
)

// PlayerVars is the caller-supplied variable map passed through to the
// iframe API verbatim (autoplay, controls, listType, ...).
type PlayerVars map[string]any

// Callback names the embedded page registers with the iframe API. The page
// turns each callback into a ytplayer:// navigation with the same host name.
var playerCallbacks = map[string]any{
	"onReady":                 "onReady",
	"onStateChange":           "onStateChange",
	"onPlaybackQualityChange": "onPlaybackQualityChange",
	"onError":                 "onPlayerError",
}

func playerParameters(vars PlayerVars) map[string]any {
	return map[string]any{
		"height":     "100%",
		"width":      "100%",
		"events":     playerCallbacks,
		"playerVars": vars,
	}
}

// serializeParameters renders the parameter map as indented JSON for
// substitution into the player template.
func serializeParameters(params map[string]any) (string, error) {
	serialized, err := json.MarshalIndent(params, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize player parameters: %w", err)
	}

	return string(serialized), nil
}
