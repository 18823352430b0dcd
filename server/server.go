package server

import (
	"net/http"

	"github.com/Kimmeng007/Heat-Equation-using-Finite-Difference/calculator"
	"github.com/Kimmeng007/Heat-Equation-using-Finite-Difference/model"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

type Server struct {
	addr     string
	upgrader websocket.Upgrader
	cfg      *calculator.Config
}

func NewServer(addr string, upgrader websocket.Upgrader, cfg *calculator.Config) *Server {
	return &Server{
		addr:     addr,
		upgrader: upgrader,
		cfg:      cfg,
	}
}

// serveWs handles websocket requests from the peer.
func (s *Server) serveWs(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Error("websocket upgrade")
		return
	}
	defer conn.Close()

	hub := NewHub(conn, s.cfg)
	defer hub.close()
	go hub.handleRequest()
	go hub.handleResponse()

	log.WithField("remote", conn.RemoteAddr().String()).Info("客户端已连接")
	for {
		var msg model.Msg
		if err = conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.WithError(err).Warn("读取消息失败")
			}
			return
		}
		select {
		case hub.msg <- msg:
		case <-hub.done:
			return
		}
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWs)
	return mux
}

func (s *Server) Serve() error {
	log.WithField("addr", s.addr).Info("websocket 服务启动")
	return http.ListenAndServe(s.addr, s.Handler())
}
