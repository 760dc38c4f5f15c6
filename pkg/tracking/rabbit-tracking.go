package tracking

import (
	"net/http"
	"time"

	"github.com/matst80/slask-storefront/pkg/common"
	"github.com/matst80/slask-storefront/pkg/messaging"
	"github.com/matst80/slask-storefront/pkg/types"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

const (
	SessionEvent uint16 = 0
	FilterEvent  uint16 = 1
)

type RabbitTracking struct {
	prefix     string
	connection *amqp.Connection
	queue      *common.QueueHandler[any]
}

func NewRabbitTracking(url, prefix string) (*RabbitTracking, error) {
	ret := RabbitTracking{
		prefix: prefix,
	}
	if err := ret.connect(url); err != nil {
		return nil, err
	}
	ret.queue = common.NewQueueHandler(ret.sendAll, 64, time.Second)
	return &ret, nil
}

func (t *RabbitTracking) connect(url string) error {
	conn, err := amqp.Dial(url)
	if err != nil {
		return err
	}
	t.connection = conn
	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()
	return messaging.DefineTopic(ch, t.prefix, messaging.TrackingTopic)
}

// Connection is shared with the settings listener.
func (t *RabbitTracking) Connection() *amqp.Connection {
	return t.connection
}

// Close publishes queued events before closing the connection.
func (t *RabbitTracking) Close() error {
	t.queue.Close()
	return t.connection.Close()
}

func (t *RabbitTracking) sendAll(events []any) {
	for _, evt := range events {
		if err := messaging.SendChange(t.connection, t.prefix, messaging.TrackingTopic, evt); err != nil {
			log.Error().Err(err).Msg("error sending tracking event")
		}
	}
}

type BaseEvent struct {
	SessionId string `json:"session_id"`
	Context   string `json:"context,omitempty"`
	Event     uint16 `json:"event"`
}

type Session struct {
	*BaseEvent
	UserAgent    string `json:"user_agent,omitempty"`
	Ip           string `json:"ip,omitempty"`
	Language     string `json:"language,omitempty"`
	PragmaHeader string `json:"pragma,omitempty"`
}

func NewSession(sessionId string, r *http.Request) *Session {
	ip := r.Header.Get("X-Real-Ip")
	if ip == "" {
		ip = r.Header.Get("X-Forwarded-For")
	}
	if ip == "" {
		ip = r.RemoteAddr
	}
	return &Session{
		BaseEvent:    &BaseEvent{Event: SessionEvent, SessionId: sessionId, Context: "storefront"},
		Language:     r.Header.Get("Accept-Language"),
		UserAgent:    r.UserAgent(),
		Ip:           ip,
		PragmaHeader: r.Header.Get("Pragma"),
	}
}

type FilterEventData struct {
	*BaseEvent
	Category        types.Category      `json:"category,omitempty"`
	Selected        map[string][]string `json:"selected,omitempty"`
	Price           *types.PriceRange   `json:"price,omitempty"`
	Sort            types.SortKey       `json:"sort"`
	NumberOfResults int                 `json:"noi"`
}

func NewFilterEvent(sessionId string, category types.Category, state types.FilterState, total int) *FilterEventData {
	ret := &FilterEventData{
		BaseEvent:       &BaseEvent{Event: FilterEvent, SessionId: sessionId, Context: "storefront"},
		Category:        category,
		Sort:            state.Sort,
		NumberOfResults: total,
	}
	for dim, sel := range state.Selected {
		if len(sel) == 0 {
			continue
		}
		if ret.Selected == nil {
			ret.Selected = make(map[string][]string)
		}
		ret.Selected[string(dim)] = sel.Values()
	}
	if state.IsPriceNarrowed() {
		price := state.PriceRange
		ret.Price = &price
	}
	return ret
}

func (rt *RabbitTracking) TrackSession(sessionId string, r *http.Request) {
	rt.queue.Add(NewSession(sessionId, r))
}

func (rt *RabbitTracking) TrackFilter(sessionId string, category types.Category, state types.FilterState, total int) {
	rt.queue.Add(NewFilterEvent(sessionId, category, state, total))
}
