package calculator

import (
	"errors"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"
)

const DefaultConfigPath = "conf/config.ini"

type Config struct {
	// [simulation]
	Length             float64
	MaxTime            float64
	InitialTemperature float64
	SpatialDivisions   int
	TimeSteps          int
	SourceFactor       float64
	Boundary           string
	MaterialFile       string // 自定义材料 json，可为空

	// [server]
	Addr string

	// [output]
	OutputDir string
	Width     float64 // 图片宽度, cm
	Height    float64 // 图片高度, cm

	// [log]
	LogLevel string
}

// LoadConfig 读取 ini 配置文件，文件不存在时使用默认值
func LoadConfig(path string) (*Config, error) {
	file := ini.Empty()
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			file, err = ini.Load(path)
			if err != nil {
				return nil, fmt.Errorf("load config %s: %w", path, err)
			}
		} else if errors.Is(err, os.ErrNotExist) {
			log.WithField("path", path).Warn("配置文件不存在，使用默认配置")
		} else {
			return nil, err
		}
	}
	return loadCfg(file), nil
}

func loadCfg(file *ini.File) *Config {
	sim := file.Section("simulation")
	return &Config{
		Length:             sim.Key("Length").MustFloat64(1.0),
		MaxTime:            sim.Key("MaxTime").MustFloat64(16.0),
		InitialTemperature: sim.Key("InitialTemperature").MustFloat64(286.15),
		SpatialDivisions:   sim.Key("SpatialDivisions").MustInt(11),
		TimeSteps:          sim.Key("TimeSteps").MustInt(5),
		SourceFactor:       sim.Key("SourceFactor").MustFloat64(1353.15),
		Boundary:           sim.Key("Boundary").MustString("mixed"),
		MaterialFile:       sim.Key("MaterialFile").String(),

		Addr: file.Section("server").Key("Addr").MustString(":9000"),

		OutputDir: file.Section("output").Key("Dir").MustString("out"),
		Width:     file.Section("output").Key("Width").MustFloat64(16),
		Height:    file.Section("output").Key("Height").MustFloat64(12),

		LogLevel: file.Section("log").Key("Level").MustString("info"),
	}
}

// Params 由配置生成网格参数，同时完成校验
func (c *Config) Params() (Params, error) {
	boundary, err := ParseBoundaryPolicy(c.Boundary)
	if err != nil {
		return Params{}, err
	}
	p := Params{
		Length:             c.Length,
		MaxTime:            c.MaxTime,
		InitialTemperature: c.InitialTemperature,
		SpatialDivisions:   c.SpatialDivisions,
		TimeSteps:          c.TimeSteps,
		Boundary:           boundary,
	}
	return p, p.Validate()
}
