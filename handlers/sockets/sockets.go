// Package sockets tells open portfolio pages that the document changed so they
// can fetch it again. The event carries no document data.
package sockets

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/zishang520/engine.io/v2/types"
	socketio "github.com/zishang520/socket.io/v2/socket"
)

// ReplacedEvent is emitted to every connected client after a replace.
const ReplacedEvent = "portfolio-replaced"

type Hub struct {
	io *socketio.Server
}

func NewHub() *Hub {
	opts := socketio.DefaultServerOptions()
	opts.SetPath("/socket.io")
	opts.SetAllowEIO3(true)
	opts.SetCors(&types.Cors{
		Origin:      "*",
		Credentials: true,
	})
	ioo := socketio.NewServer(nil, opts)

	ioo.On("connection", func(clients ...any) {
		socket := clients[0].(*socketio.Socket)
		log := logrus.WithField("socket_id", socket.Id())
		log.Debug("Viewer connected")

		socket.On("disconnect", func(...any) {
			log.Debug("Viewer disconnected")
			socket.RemoveAllListeners("")
		})
	})

	return &Hub{io: ioo}
}

func (h *Hub) Handler() http.Handler {
	return h.io.ServeHandler(nil)
}

// Replaced implements service.Notifier. It broadcasts on the default namespace.
func (h *Hub) Replaced() {
	h.io.Sockets().Emit(ReplacedEvent)
	logrus.Debug("Notified viewers of replace")
}

func (h *Hub) Close() {
	h.io.Close(nil)
}
