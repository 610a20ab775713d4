package tts

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/healbot/medconsult/internal/apierr"
	"github.com/healbot/medconsult/pkg/logging"
)

const (
	edgeWSEndpoint     = "wss://speech.platform.bing.com/consumer/speech/synthesize/readaloud/edge/v1"
	edgeVoicesEndpoint = "https://speech.platform.bing.com/consumer/speech/synthesize/readaloud/voices/list"
	trustedClientToken = "6A5AA1D4EAFF4E9FB37E23D68491D6F4"

	outputFormat = "audio-24khz-48kbitrate-mono-mp3"

	// Fallback read deadline when the caller context carries none.
	defaultStreamDeadline = 30 * time.Second
)

// Voice is one entry of the service's voice catalog.
type Voice struct {
	Name      string `json:"Name"`
	ShortName string `json:"ShortName"`
	Gender    string `json:"Gender"`
	Locale    string `json:"Locale"`
	LocalName string `json:"LocalName"`
}

// EdgeClient speaks the Edge read-aloud websocket protocol: one
// connection per synthesis call, a speech.config frame, an SSML frame,
// then binary audio frames accumulated in memory until turn.end.
type EdgeClient struct {
	wsEndpoint     string
	voicesEndpoint string
	dialer         *websocket.Dialer
	httpClient     *http.Client
	logger         *logging.Logger
}

// NewEdgeClient creates a client against the public Edge endpoints.
func NewEdgeClient(logger *logging.Logger) *EdgeClient {
	return newEdgeClient(edgeWSEndpoint, edgeVoicesEndpoint, logger)
}

func newEdgeClient(wsEndpoint, voicesEndpoint string, logger *logging.Logger) *EdgeClient {
	return &EdgeClient{
		wsEndpoint:     wsEndpoint,
		voicesEndpoint: voicesEndpoint,
		dialer:         &websocket.Dialer{HandshakeTimeout: 10 * time.Second},
		httpClient:     &http.Client{Timeout: 10 * time.Second},
		logger:         logger,
	}
}

// Synthesize converts text to an MP3 byte payload using the given
// voice. The whole stream is buffered before returning; a stream that
// produced zero audio bytes is an error.
func (c *EdgeClient) Synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	connID := strings.ReplaceAll(uuid.NewString(), "-", "")
	url := fmt.Sprintf("%s?TrustedClientToken=%s&ConnectionId=%s", c.wsEndpoint, trustedClientToken, connID)

	header := http.Header{}
	header.Set("Origin", "chrome-extension://jdiccldimpdaibmpdkjnbmckianbfold")

	conn, resp, err := c.dialer.DialContext(ctx, url, header)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		return nil, apierr.Wrap(apierr.KindExternalService, "Text-to-speech generation failed", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(defaultStreamDeadline)
	if d, ok := ctx.Deadline(); ok {
		deadline = d
	}
	conn.SetReadDeadline(deadline)
	conn.SetWriteDeadline(deadline)

	if err := conn.WriteMessage(websocket.TextMessage, speechConfigFrame()); err != nil {
		return nil, apierr.Wrap(apierr.KindExternalService, "Text-to-speech generation failed", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, ssmlFrame(connID, text, voice)); err != nil {
		return nil, apierr.Wrap(apierr.KindExternalService, "Text-to-speech generation failed", err)
	}

	var audio bytes.Buffer
	for {
		msgType, msg, err := conn.ReadMessage()
		if err != nil {
			return nil, apierr.Wrap(apierr.KindExternalService, "Text-to-speech generation failed", err)
		}
		switch msgType {
		case websocket.TextMessage:
			if strings.Contains(string(msg), "Path:turn.end") {
				if audio.Len() == 0 {
					return nil, apierr.New(apierr.KindEmptySynthesis, "No audio data generated")
				}
				c.logger.Debug("synthesis stream complete", "voice", voice, "bytes", audio.Len())
				return audio.Bytes(), nil
			}
		case websocket.BinaryMessage:
			if payload, ok := audioPayload(msg); ok {
				audio.Write(payload)
			}
		}
	}
}

// Voices fetches the service's voice catalog.
func (c *EdgeClient) Voices(ctx context.Context) ([]Voice, error) {
	url := fmt.Sprintf("%s?trustedclienttoken=%s", c.voicesEndpoint, trustedClientToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apierr.Wrap(apierr.KindInternal, "failed to build voices request", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apierr.Wrap(apierr.KindExternalService, "Failed to fetch voices", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apierr.New(apierr.KindExternalService,
			fmt.Sprintf("Failed to fetch voices: status %d", resp.StatusCode))
	}

	var voices []Voice
	if err := json.NewDecoder(resp.Body).Decode(&voices); err != nil {
		return nil, apierr.Wrap(apierr.KindExternalService, "Failed to fetch voices", err)
	}
	return voices, nil
}

func speechConfigFrame() []byte {
	var b strings.Builder
	b.WriteString("X-Timestamp:" + edgeTimestamp() + "\r\n")
	b.WriteString("Content-Type:application/json; charset=utf-8\r\n")
	b.WriteString("Path:speech.config\r\n\r\n")
	b.WriteString(`{"context":{"synthesis":{"audio":{"metadataoptions":` +
		`{"sentenceBoundaryEnabled":"false","wordBoundaryEnabled":"false"},` +
		`"outputFormat":"` + outputFormat + `"}}}}`)
	return []byte(b.String())
}

func ssmlFrame(requestID, text, voice string) []byte {
	ssml := fmt.Sprintf(
		"<speak version='1.0' xmlns='http://www.w3.org/2001/10/synthesis' xml:lang='en-US'>"+
			"<voice name='%s'><prosody pitch='+0Hz' rate='+0%%' volume='+0%%'>%s</prosody></voice></speak>",
		voice, escapeSSML(text))

	var b strings.Builder
	b.WriteString("X-RequestId:" + requestID + "\r\n")
	b.WriteString("Content-Type:application/ssml+xml\r\n")
	b.WriteString("X-Timestamp:" + edgeTimestamp() + "\r\n")
	b.WriteString("Path:ssml\r\n\r\n")
	b.WriteString(ssml)
	return []byte(b.String())
}

var ssmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escapeSSML(text string) string {
	return ssmlEscaper.Replace(text)
}

func edgeTimestamp() string {
	return time.Now().UTC().Format("Mon Jan 02 2006 15:04:05") + " GMT+0000 (Coordinated Universal Time)"
}

// audioPayload splits a binary frame into its textual header and audio
// payload. The first two bytes carry the big-endian header length; only
// frames whose header declares Path:audio contribute audio bytes.
// Path:audio.metadata frames share the prefix and must not match.
func audioPayload(msg []byte) ([]byte, bool) {
	if len(msg) < 2 {
		return nil, false
	}
	headerLen := int(binary.BigEndian.Uint16(msg[:2]))
	if len(msg) < 2+headerLen {
		return nil, false
	}
	header := msg[2 : 2+headerLen]
	for _, line := range bytes.Split(header, []byte("\r\n")) {
		if bytes.Equal(line, []byte("Path:audio")) {
			return msg[2+headerLen:], true
		}
	}
	return nil, false
}
