package youtube

import (
	"context"
	"fmt"

	cerrors "github.com/lbmaian/chatdl/internal/chatdl/errors"
	"github.com/lbmaian/chatdl/internal/chatdl/model"
)

// heartbeatPayload is the player/heartbeat request body.
type heartbeatPayload struct {
	Context                map[string]any    `json:"context"`
	VideoID                string            `json:"videoId"`
	HeartbeatRequestParams map[string][]string `json:"heartbeatRequestParams"`
}

// issueHeartbeat POSTs a heartbeat check and merges the resulting
// playability status and scheduled start time into config, per §4.6
// Phase III step 1.
func (e *Engine) issueHeartbeat(ctx context.Context, config *model.EngineConfig) error {
	payload := heartbeatPayload{
		Context: config.Context,
		VideoID: config.VideoID,
		HeartbeatRequestParams: map[string][]string{
			"heartbeatChecks": {"HEARTBEAT_CHECK_TYPE_LIVE_STREAM_STATUS"},
		},
	}

	body, err := e.sess.PostJSON(ctx, heartbeatURL(config), payload, nil)
	if err != nil {
		return fmt.Errorf("youtube: heartbeat request: %w", err)
	}

	resp, err := decodeJSONMap(body)
	if err != nil {
		return err
	}
	if apiErr, ok := navigate(resp, "error"); ok {
		return classifyAPIError(apiErr)
	}

	applyPlayability(config, resp)
	return nil
}

func classifyAPIError(apiErr map[string]any) error {
	codeVal, _ := toInt64(apiErr["code"])
	code := int(codeVal)
	switch code {
	case 403:
		return cerrors.ErrVideoUnavailable
	case 404:
		return cerrors.ErrVideoNotFound
	default:
		return fmt.Errorf("%w: youtube api error %v: %v", cerrors.ErrParsing, code, apiErr["message"])
	}
}
