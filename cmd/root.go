package cmd

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/Kimmeng007/Heat-Equation-using-Finite-Difference/calculator"
	"github.com/Kimmeng007/Heat-Equation-using-Finite-Difference/material"
	"github.com/Kimmeng007/Heat-Equation-using-Finite-Difference/result"
	"github.com/Kimmeng007/Heat-Equation-using-Finite-Difference/server"
	"github.com/Kimmeng007/Heat-Equation-using-Finite-Difference/visualization"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	configFile   string
	dimension    int
	materialName string
	materialFile string
	outputDir    string
	addr         string

	// Config 由 --config 指定的配置文件读取
	Config *calculator.Config
)

// Root is the main command.
var Root = &cobra.Command{
	Use:   "heat",
	Short: "Transient heat conduction solver.",
	Long: `Solves the transient heat equation on a 1D bar or a 2D square plate
with implicit finite differences, for a catalog of materials.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return Startup(configFile)
	},
}

// Startup 读取配置文件并设置日志级别
func Startup(configFile string) error {
	var err error
	Config, err = calculator.LoadConfig(configFile)
	if err != nil {
		return err
	}
	level, err := log.ParseLevel(Config.LogLevel)
	if err != nil {
		return fmt.Errorf("%w: log level: %w", calculator.ErrInvalidConfig, err)
	}
	log.SetLevel(level)
	return nil
}

var materialsCmd = &cobra.Command{
	Use:   "materials",
	Short: "Print the material catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := materials()
		if err != nil {
			return err
		}
		for _, m := range list {
			fmt.Fprintln(cmd.OutOrStdout(), m)
		}
		return nil
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the simulation and render PNG files",
	Long: `Run the simulation for one material, or for every material in the
catalog one after another when --material is not given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := materials()
		if err != nil {
			return err
		}
		if materialName != "" {
			list, err = selectMaterial(list, materialName)
			if err != nil {
				return err
			}
		}
		p, err := Config.Params()
		if err != nil {
			return err
		}
		runners, err := result.Catalog(dimension, list, p, Config.SourceFactor)
		if err != nil {
			return err
		}
		dir := outputDir
		if dir == "" {
			dir = Config.OutputDir
		}
		v := visualization.NewPNG(dir, Config.Width, Config.Height)
		return result.RunAll(cmd.Context(), runners, v)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the websocket server",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := addr
		if a == "" {
			a = Config.Addr
		}
		upgrader := websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		}
		return server.NewServer(a, upgrader, Config).Serve()
	},
}

// materials 预置材料，加上 --materials 或配置文件指定的自定义材料
func materials() ([]material.Material, error) {
	list := material.Catalog()
	file := materialFile
	if file == "" {
		file = Config.MaterialFile
	}
	if file != "" {
		custom, err := material.LoadFile(file)
		if err != nil {
			return nil, err
		}
		list = append(list, custom...)
	}
	return list, nil
}

func selectMaterial(list []material.Material, name string) ([]material.Material, error) {
	for _, m := range list {
		if strings.EqualFold(m.Name, strings.TrimSpace(name)) {
			return []material.Material{m}, nil
		}
	}
	return nil, fmt.Errorf("%w: unknown material %q", calculator.ErrInvalidConfig, name)
}

var options = []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	value                  interface{}
	flagsets               []*pflag.FlagSet
}{
	{
		name:       "config",
		usage:      "configuration file location",
		defaultVal: calculator.DefaultConfigPath,
		value:      &configFile,
		flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
	},
	{
		name:       "materials",
		usage:      "json file with custom materials, overrides the config file",
		defaultVal: "",
		value:      &materialFile,
		flagsets:   []*pflag.FlagSet{runCmd.Flags(), materialsCmd.Flags()},
	},
	{
		name:       "dim",
		usage:      "dimension of the simulation, 1 (bar) or 2 (plate)",
		shorthand:  "d",
		defaultVal: 1,
		value:      &dimension,
		flagsets:   []*pflag.FlagSet{runCmd.Flags()},
	},
	{
		name:       "material",
		usage:      "material name, all materials are simulated when empty",
		shorthand:  "m",
		defaultVal: "",
		value:      &materialName,
		flagsets:   []*pflag.FlagSet{runCmd.Flags()},
	},
	{
		name:       "out",
		usage:      "output directory for the PNG files, overrides the config file",
		shorthand:  "o",
		defaultVal: "",
		value:      &outputDir,
		flagsets:   []*pflag.FlagSet{runCmd.Flags()},
	},
	{
		name:       "addr",
		usage:      "listen address, overrides the config file",
		defaultVal: "",
		value:      &addr,
		flagsets:   []*pflag.FlagSet{serveCmd.Flags()},
	},
}

func init() {
	Root.AddCommand(materialsCmd, runCmd, serveCmd)

	for _, option := range options {
		for _, set := range option.flagsets {
			switch v := option.value.(type) {
			case *string:
				set.StringVarP(v, option.name, option.shorthand, option.defaultVal.(string), option.usage)
			case *int:
				set.IntVarP(v, option.name, option.shorthand, option.defaultVal.(int), option.usage)
			default:
				panic(fmt.Errorf("invalid flag type %T for %s", v, option.name))
			}
		}
	}
}
