package model

// 前后端通信以及配置文件使用的结构体

// 前后端通信消息结构
type Msg struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// 消息类型
const (
	MsgEnv      = "env"
	MsgStart    = "start"
	MsgStop     = "stop"
	MsgEnvSet   = "envSet"
	MsgFrame    = "frame"
	MsgFinished = "finished"
	MsgStopped  = "stopped"
	MsgError    = "error"
)

// 材料物性参数，材料文件中为该结构的数组
type MaterialRecord struct {
	Name                string  `json:"name"`
	ThermalConductivity float64 `json:"thermal_conductivity"` // W/(m.K)
	Density             float64 `json:"density"`              // kg/m^3
	SpecificHeat        float64 `json:"specific_heat"`        // J/(kg.K)
}

// 一次仿真的环境参数
type Env struct {
	Dimension          int             `json:"dimension"` // 1 或 2
	Material           string          `json:"material"`  // 预置材料名称，CustomMaterial 不为空时忽略
	CustomMaterial     *MaterialRecord `json:"custom_material,omitempty"`
	Length             float64         `json:"length"`
	MaxTime            float64         `json:"max_time"`
	InitialTemperature float64         `json:"initial_temperature"`
	SpatialDivisions   int             `json:"spatial_divisions"`
	TimeSteps          int             `json:"time_steps"`
	SourceFactor       float64         `json:"source_factor"`
	Boundary           string          `json:"boundary"` // mixed / neumann / dirichlet，仅二维
}

// 推送给前端的一帧温度数据，一维时 Grid 只有一行
type Frame struct {
	Index int         `json:"index"`
	Time  float64     `json:"time"`
	Max   float64     `json:"max"`
	Grid  [][]float64 `json:"grid"`
}
