package server

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/Kimmeng007/Heat-Equation-using-Finite-Difference/calculator"
	"github.com/Kimmeng007/Heat-Equation-using-Finite-Difference/model"
	"github.com/Kimmeng007/Heat-Equation-using-Finite-Difference/result"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
)

// Hub 对应一个 websocket 连接，处理前端的 env / start / stop 请求并推送计算结果
type Hub struct {
	conn *websocket.Conn
	cfg  *calculator.Config

	// request
	msg chan model.Msg
	// response，只有 handleResponse 写连接
	reply chan model.Msg
	done  chan struct{}
	once  sync.Once

	mu      sync.Mutex
	runner  result.Runner
	cancel  context.CancelFunc
	running bool
}

func NewHub(conn *websocket.Conn, cfg *calculator.Config) *Hub {
	return &Hub{
		conn:  conn,
		cfg:   cfg,
		msg:   make(chan model.Msg, 10),
		reply: make(chan model.Msg, 10),
		done:  make(chan struct{}),
	}
}

// close 连接断开后停止计算并退出两个协程
func (h *Hub) close() {
	h.once.Do(func() {
		h.mu.Lock()
		if h.cancel != nil {
			h.cancel()
		}
		h.mu.Unlock()
		close(h.done)
	})
}

func (h *Hub) send(msg model.Msg) bool {
	select {
	case h.reply <- msg:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) sendError(err error) {
	log.WithError(err).Warn("请求处理失败")
	h.send(model.Msg{Type: model.MsgError, Content: err.Error()})
}

func (h *Hub) handleResponse() {
	for {
		select {
		case reply := <-h.reply:
			if err := h.conn.WriteJSON(&reply); err != nil {
				log.WithError(err).Error("发送消息失败")
				h.close()
				return
			}
		case <-h.done:
			return
		}
	}
}

func (h *Hub) handleRequest() {
	for {
		select {
		case msg := <-h.msg:
			switch msg.Type {
			case model.MsgEnv:
				h.setEnv(msg.Content)
			case model.MsgStart:
				h.start()
			case model.MsgStop:
				h.stop()
			default:
				log.WithField("type", msg.Type).Warn("no such type")
				h.sendError(errors.New("no such type: " + msg.Type))
			}
		case <-h.done:
			return
		}
	}
}

func (h *Hub) setEnv(content string) {
	var env model.Env
	if content != "" {
		if err := json.Unmarshal([]byte(content), &env); err != nil {
			h.sendError(err)
			return
		}
	}
	runner, err := buildRunner(env, h.cfg)
	if err != nil {
		h.sendError(err)
		return
	}
	h.mu.Lock()
	h.runner = runner
	h.mu.Unlock()

	log.WithFields(log.Fields{
		"material":  runner.Name(),
		"dimension": env.Dimension,
	}).Info("设置仿真参数")
	h.send(model.Msg{Type: model.MsgEnvSet, Content: "env is set"})
}

func (h *Hub) start() {
	h.mu.Lock()
	if h.running {
		h.mu.Unlock()
		h.sendError(errors.New("simulation is already running"))
		return
	}
	if h.runner == nil {
		// 未设置参数时使用配置文件的默认值
		runner, err := buildRunner(model.Env{}, h.cfg)
		if err != nil {
			h.mu.Unlock()
			h.sendError(err)
			return
		}
		h.runner = runner
	}
	ctx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel
	h.running = true
	runner := h.runner
	h.mu.Unlock()

	go h.run(ctx, runner)
}

func (h *Hub) run(ctx context.Context, runner result.Runner) {
	defer func() {
		h.mu.Lock()
		h.running = false
		h.cancel()
		h.mu.Unlock()
	}()

	err := result.RunAll(ctx, []result.Runner{runner}, &frameSink{ctx: ctx, hub: h})
	switch {
	case err == nil:
		h.send(model.Msg{Type: model.MsgFinished, Content: runner.Name()})
	case errors.Is(err, context.Canceled):
		log.WithField("material", runner.Name()).Info("计算已停止")
	default:
		h.sendError(err)
	}
}

func (h *Hub) stop() {
	h.mu.Lock()
	if h.running {
		h.cancel()
	}
	h.mu.Unlock()
	h.send(model.Msg{Type: model.MsgStopped, Content: "stopped"})
}

// frameSink 把每个时间层作为一帧推送给前端
type frameSink struct {
	ctx context.Context
	hub *Hub
}

func (f *frameSink) push(index int, dt float64, grid [][]float64) error {
	if err := f.ctx.Err(); err != nil {
		return err
	}
	frame := model.Frame{
		Index: index,
		Time:  float64(index) * dt,
		Grid:  grid,
	}
	for i, row := range grid {
		if m := floats.Max(row); i == 0 || m > frame.Max {
			frame.Max = m
		}
	}
	data, err := json.Marshal(frame)
	if err != nil {
		return err
	}
	if !f.hub.send(model.Msg{Type: model.MsgFrame, Content: string(data)}) {
		return context.Canceled
	}
	return nil
}

func (f *frameSink) Profiles(_ string, rows [][]float64, _, dt float64) error {
	for t, row := range rows {
		if err := f.push(t, dt, [][]float64{row}); err != nil {
			return err
		}
	}
	return nil
}

func (f *frameSink) Grids(_ string, grids [][][]float64, _, dt float64) error {
	for t, g := range grids {
		if err := f.push(t, dt, g); err != nil {
			return err
		}
	}
	return nil
}
