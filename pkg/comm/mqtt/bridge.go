package mqtt

import (
	"context"
	"encoding/json"
	"flag"
	"os"

	"github.com/golang/glog"

	"github.com/robotalks/slider.go/pkg/framework"
	"github.com/robotalks/slider.go/pkg/link"
	"github.com/robotalks/slider.go/pkg/msgs"
	"github.com/robotalks/slider.go/pkg/slider"
)

// DeviceType is the first topic level of the slider.
const DeviceType = "slider"

// Topic suffixes under <type>/<id>/.
const (
	TopicMeta  = "meta"
	TopicMsg   = "msg"
	TopicCmd   = "cmd"
	TopicReply = "reply"
)

// Config defines the broker connection.
type Config struct {
	URL string
}

var defaultConfig Config

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.URL, "mqtt", defaultConfig.URL, "MQTT broker URL, e.g. mqtt://localhost:1883/robo/.")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// Enabled indicates a broker is configured.
func (c *Config) Enabled() bool {
	return c.URL != ""
}

// Meta is published retained on the meta topic while the bridge is
// connected.
type Meta struct {
	Type     string `json:"type"`
	ID       string `json:"id"`
	Protocol string `json:"protocol"`
}

// Bridge publishes axis status and accepts command lines over MQTT.
type Bridge struct {
	Queue *Queue
	Ref   string

	meta  []byte
	cmdCh chan []byte
}

// NewBridge creates a Bridge for the device id.
func (c *Config) NewBridge(id string) (*Bridge, error) {
	opts, prefix, err := ClientOptionsFromURL(c.URL)
	if err != nil {
		return nil, err
	}
	b := &Bridge{Ref: DeviceType + "/" + id, cmdCh: make(chan []byte, 16)}
	b.meta, err = json.Marshal(&Meta{Type: DeviceType, ID: id, Protocol: "line/1"})
	if err != nil {
		return nil, err
	}
	opts.SetBinaryWill(prefix+b.Topic(TopicMeta), nil, 1, true)
	if opts.ClientID == "" {
		opts.SetClientID(DeviceType + ":" + id)
	}
	b.Queue = NewQueue(opts, prefix)
	b.Queue.OnConnect = func(q *Queue) {
		q.PubWith(b.Topic(TopicMeta), b.meta, 1, true)
	}
	return b, nil
}

// Topic returns the topic under the device ref.
func (b *Bridge) Topic(suffix string) string {
	return b.Ref + "/" + suffix
}

// Watch publishes an axis state change on the msg topic.
func (b *Bridge) Watch(axis slider.Axis) {
	payload, err := StatusPayload(axis)
	if err != nil {
		glog.Errorf("encode status: %v", err)
		return
	}
	b.Queue.Pub(b.Topic(TopicMsg), payload)
}

// StatusPayload encodes the axis state as a Typed SliderStatus.
func StatusPayload(axis slider.Axis) ([]byte, error) {
	typed, err := msgs.TypedFrom(msgs.NewSliderStatus(axis))
	if err != nil {
		return nil, err
	}
	return typed.Encode()
}

// Name implements framework.Named.
func (b *Bridge) Name() string {
	return "mqtt:" + b.Ref
}

// Run implements framework.Runnable. Command lines are executed in the
// loop found in ctx in the order received.
func (b *Bridge) Run(ctx context.Context) error {
	lc := framework.LoopCtlFrom(ctx)
	sub := b.Queue.Sub(b.Topic(TopicCmd), func(_ string, payload []byte) {
		select {
		case b.cmdCh <- payload:
		default:
			glog.Warningf("%s: command dropped, queue full", b.Ref)
		}
	})
	defer sub.Close()

	if token := b.Queue.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	for {
		select {
		case payload := <-b.cmdCh:
			resp, err := link.Exec(ctx, lc, b.Name(), string(payload))
			if err != nil {
				continue
			}
			if resp != "" {
				b.Queue.Pub(b.Topic(TopicReply), []byte(resp))
			}
		case <-ctx.Done():
			b.Queue.PubWith(b.Topic(TopicMeta), nil, 1, true).Wait()
			b.Queue.Close()
			return ctx.Err()
		}
	}
}

func init() {
	if u := os.Getenv("SLIDER_MQTT_URL"); u != "" {
		defaultConfig.URL = u
	}
}
