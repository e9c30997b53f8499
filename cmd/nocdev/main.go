// nocdev is the operator CLI for the device inventory: one-shot queries and
// control actions against the switches and PDUs listed in the inventory file.
//
// Usage:
//
//	nocdev [-c conf/nocdev.yml] <device> <command> [args]
//
// Switch commands: version, mac-table [ignore-port], ipdt, vlan <port>,
// set-vlan <port> <vlan>, poe <port>, poe-on <port>, poe-off <port>,
// poe-limit <port> <mode> <milliwatts>.
//
// PDU commands: info, readings, sensors, outlet-status <n>, outlet-name <n>,
// outlet <n> on|off|reboot.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/charlesren/ylog"
	"github.com/spf13/viper"

	"github.com/nocware/nocdev/types"
)

var (
	userConfig *viper.Viper
	confPath   string
)

// deviceEntry is one inventory record in the config file
type deviceEntry struct {
	Name           string `mapstructure:"name"`
	Class          string `mapstructure:"class"`
	Address        string `mapstructure:"address"`
	Port           int    `mapstructure:"port"`
	Username       string `mapstructure:"username"`
	Password       string `mapstructure:"password"`
	EnableSecret   string `mapstructure:"enable_secret"`
	ReadCommunity  string `mapstructure:"read_community"`
	WriteCommunity string `mapstructure:"write_community"`
	TimeoutSec     int    `mapstructure:"timeout_sec"`
}

func initConfig() {
	userConfig = viper.New()
	userConfig.SetConfigFile(confPath)
	if err := userConfig.ReadInConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config %s: %v\n", confPath, err)
		os.Exit(1)
	}
	initLog()
}

func initLog() {
	logPath := userConfig.GetString("log.path")
	if logPath == "" {
		logPath = "logs/nocdev.log"
	}
	logger := ylog.NewYLog(
		ylog.WithLogFile(logPath),
		ylog.WithMaxAge(3),
		ylog.WithMaxSize(100),
		ylog.WithMaxBackups(3),
		ylog.WithLevel(userConfig.GetInt("log.level")),
	)
	ylog.InitLogger(logger)
}

// lookupDevice finds one inventory record by name
func lookupDevice(name string) (*types.DeviceConfig, error) {
	var entries []deviceEntry
	if err := userConfig.UnmarshalKey("devices", &entries); err != nil {
		return nil, fmt.Errorf("bad devices section: %w", err)
	}

	for _, e := range entries {
		if e.Name != name {
			continue
		}
		return &types.DeviceConfig{
			Name:           e.Name,
			Class:          types.DeviceClass(e.Class),
			Address:        e.Address,
			Port:           e.Port,
			Username:       e.Username,
			Password:       e.Password,
			EnableSecret:   e.EnableSecret,
			ReadCommunity:  e.ReadCommunity,
			WriteCommunity: e.WriteCommunity,
			Timeout:        time.Duration(e.TimeoutSec) * time.Second,
		}, nil
	}
	return nil, fmt.Errorf("device %q not in inventory", name)
}

func main() {
	flag.StringVar(&confPath, "c", "conf/nocdev.yml", "ConfigPath")
	flag.Parse()

	args := flag.Args()
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: nocdev [-c config] <device> <command> [args]")
		os.Exit(2)
	}

	initConfig()

	config, err := lookupDevice(args[0])
	if err != nil {
		fatal(err)
	}

	switch config.Class {
	case types.DeviceClassSwitch:
		err = runSwitchCommand(config, args[1], args[2:])
	case types.DeviceClassPDU:
		err = runPDUCommand(config, args[1], args[2:])
	default:
		err = fmt.Errorf("device %s has unsupported class %q", config.Name, config.Class)
	}
	if err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "nocdev: %v\n", err)
	os.Exit(1)
}
