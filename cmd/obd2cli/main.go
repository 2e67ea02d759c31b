// Command obd2cli sends OBD-II requests over a CAN bus reached through an
// SLCAN serial adapter or a networked CAN-over-TCP/UDP bridge, and prints
// the decoded response.
package main

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	uds "github.com/elektrosoftlab/isotpuds"
	"github.com/elektrosoftlab/isotpuds/obd2"
	"github.com/elektrosoftlab/isotpuds/transport/cantcp"
	"github.com/elektrosoftlab/isotpuds/transport/slcan"
)

var (
	cfgFile string
	cfg     *Config
	log     = charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		ReportTimestamp: true,
		Prefix:          "obd2cli",
	})
)

// bus is whichever transport is active, reduced to the operations obd2cli
// uses: sending and receiving frames, and closing the link.
type bus interface {
	Send(arbitrationID uint32, data []byte) bool
	Receive() (frame, error)
	Close() error
}

// frame is transport-agnostic: both cantcp.Frame and slcan.Frame satisfy it
// via the adapters below.
type frame struct {
	ArbitrationID uint32
	Data          []byte
}

type cantcpBus struct{ t *cantcp.Transport }

func (b cantcpBus) Send(arbitrationID uint32, data []byte) bool { return b.t.Send(arbitrationID, data) }
func (b cantcpBus) Receive() (frame, error) {
	f, err := b.t.Receive()
	return frame{ArbitrationID: f.ArbitrationID, Data: f.Data}, err
}
func (b cantcpBus) Close() error { return b.t.Close() }

type slcanBus struct{ t *slcan.Transport }

func (b slcanBus) Send(arbitrationID uint32, data []byte) bool { return b.t.Send(arbitrationID, data) }
func (b slcanBus) Receive() (frame, error) {
	f, err := b.t.Receive()
	return frame{ArbitrationID: f.ArbitrationID, Data: f.Data}, err
}
func (b slcanBus) Close() error { return b.t.Close() }

func openBus(cfg *Config) (bus, error) {
	switch cfg.Transport {
	case "slcan":
		t, err := slcan.Open(slcan.Config{Device: cfg.Device, BaudRate: cfg.BaudRate, Bitrate: cfg.Bitrate})
		if err != nil {
			return nil, err
		}
		return slcanBus{t}, nil
	case "cantcp":
		conn, err := dialNetwork(cfg.Network, cfg.Address)
		if err != nil {
			return nil, err
		}
		if cfg.Network == "udp" {
			udpConn, ok := conn.(*net.UDPConn)
			if !ok {
				return nil, fmt.Errorf("cantcp: expected a UDP connection, got %T", conn)
			}
			return cantcpBus{cantcp.NewUDPTransport(udpConn, cfg.timeout(), log.StandardLog())}, nil
		}
		return cantcpBus{cantcp.NewTCPTransport(conn, cfg.timeout(), log.StandardLog())}, nil
	default:
		return nil, fmt.Errorf("unknown transport %q", cfg.Transport)
	}
}

var rootCmd = &cobra.Command{
	Use:           "obd2cli",
	Short:         "Send OBD-II diagnostic requests over CAN",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = loadConfig(cfgFile)
		return err
	},
}

var pidCmd = &cobra.Command{
	Use:   "pid <hex-pid>",
	Short: "Request a single OBD-II mode 0x01 parameter ID and print its decoded value",
	Args:  cobra.ExactArgs(1),
	RunE:  runPID,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "obd2cli.yaml", "path to config file")
	rootCmd.AddCommand(pidCmd)
}

func runPID(cmd *cobra.Command, args []string) error {
	pidVal, err := strconv.ParseUint(args[0], 16, 16)
	if err != nil {
		return fmt.Errorf("parsing PID %q: %w", args[0], err)
	}

	b, err := openBus(cfg)
	if err != nil {
		return err
	}
	defer b.Close()

	arbID := cfg.ArbitrationID
	if arbID == 0 {
		arbID = uds.FunctionalBroadcastID
	}

	shims := uds.InitShims(log.Infof, b.Send, nil)

	var result *uds.Response
	handle := uds.RequestPID(shims, uds.StandardPID, arbID, uint16(pidVal), func(r *uds.Response) {
		result = r
	})

	deadline := time.Now().Add(cfg.timeout())
	for !handle.Completed && time.Now().Before(deadline) {
		f, err := b.Receive()
		if err != nil {
			continue
		}
		uds.ReceiveCANFrame(shims, handle, f.ArbitrationID, f.Data)
	}

	if result == nil || !result.Success {
		return fmt.Errorf("no positive response received for PID 0x%x", pidVal)
	}

	value := obd2.Decode(result)
	log.Infof("pid 0x%x = %v", pidVal, value)
	fmt.Println(value)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
