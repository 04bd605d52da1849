package mux

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"qrng-server/internal/rng"
)

const writeWait = time.Second * 10
const pongWait = time.Second * 60
const pingPeriod = pongWait * 9 / 10

// feedBatchBits is how many bits each feed message carries
const feedBatchBits = 8

type feedMessage struct {
	Source string    `json:"source"`
	Bits   string    `json:"bits"`
	Length int       `json:"length"`
	SentAt time.Time `json:"sentAt"`
}

// getFeedWS streams a batch of freshly generated bits on an interval over a
// websocket connection
func (m *Mux) getFeedWS() http.HandlerFunc {
	upgrader := &websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		name := r.FormValue("source")
		if name == "" {
			name = rng.SourceQuantum
		}

		source, err := m.sources(name)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logrus.WithError(err).Error("could not upgrade connection")
			return
		}

		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			_ = conn.SetReadDeadline(time.Now().Add(pongWait))
			return nil
		})

		done := make(chan bool)
		defer func() {
			_ = conn.Close()
			close(done)
		}()

		go m.feedWriteLoop(conn, source, done)
		feedReadLoop(conn)
	}
}

func (m *Mux) feedWriteLoop(conn *websocket.Conn, source rng.Source, done chan bool) {
	pingTicker := time.NewTicker(pingPeriod)
	feedTicker := time.NewTicker(m.config.feedInterval)

	defer func() {
		pingTicker.Stop()
		feedTicker.Stop()
		_ = conn.Close()
	}()

	for {
		select {
		case <-done:
			return
		case <-pingTicker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-feedTicker.C:
			bits, err := source.Bits(feedBatchBits)
			if err != nil {
				logrus.WithError(err).WithField("source", source.Name()).Error("could not generate feed bits")
				return
			}

			msg := feedMessage{
				Source: source.Name(),
				Bits:   bits.String(),
				Length: bits.Len(),
				SentAt: time.Now(),
			}

			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
		}
	}
}

// feedReadLoop consumes client frames so control messages are processed; the
// feed is one-way, so anything other than close and pong is discarded
func feedReadLoop(conn *websocket.Conn) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logrus.WithError(err).Debug("feed connection closed unexpectedly")
			}

			return
		}
	}
}
