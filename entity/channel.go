package entity

import "fmt"

// Channel is a settlement method the gateway may use to collect a payment.
// The string value is the gateway form field name for the channel flag.
type Channel string

const (
	ChannelMpesa         Channel = "mpesa"
	ChannelAirtel        Channel = "airtel"
	ChannelEquity        Channel = "equity"
	ChannelMobileBanking Channel = "mobilebanking"
	ChannelDebitCard     Channel = "debitcard"
	ChannelCreditCard    Channel = "creditcard"
	ChannelMkopoRahisi   Channel = "mkoporahisi"
	ChannelSaida         Channel = "saida"
)

// catalog is the fixed declaration order used when channel flags are serialized
var catalog = [...]Channel{
	ChannelMpesa,
	ChannelAirtel,
	ChannelEquity,
	ChannelMobileBanking,
	ChannelDebitCard,
	ChannelCreditCard,
	ChannelMkopoRahisi,
	ChannelSaida,
}

var catalogIndex = func() map[Channel]int {
	index := make(map[Channel]int, len(catalog))
	for i, ch := range catalog {
		index[ch] = i
	}
	return index
}()

// Channels returns the full channel catalog in declaration order.
func Channels() []Channel {
	out := make([]Channel, len(catalog))
	copy(out, catalog[:])
	return out
}

// DefaultChannels returns the channels enabled on a new transaction.
func DefaultChannels() []Channel {
	return []Channel{ChannelMpesa, ChannelAirtel, ChannelEquity, ChannelCreditCard, ChannelDebitCard}
}

// Valid reports whether the channel belongs to the catalog.
func (c Channel) Valid() bool {
	_, ok := catalogIndex[c]
	return ok
}

func (c Channel) String() string {
	return string(c)
}

// ParseChannel maps a gateway identifier to a catalog channel.
func ParseChannel(value string) (Channel, error) {
	ch := Channel(value)
	if !ch.Valid() {
		return "", fmt.Errorf("unknown channel %q", value)
	}
	return ch, nil
}

// ChannelSet is a subset of the catalog.
type ChannelSet map[Channel]struct{}

// NewChannelSet builds a set from catalog channels; unknown entries are reported
// as an error and the set is not built.
func NewChannelSet(channels ...Channel) (ChannelSet, error) {
	set := make(ChannelSet, len(channels))
	for _, ch := range channels {
		if !ch.Valid() {
			return nil, fmt.Errorf("unknown channel %q", string(ch))
		}
		set[ch] = struct{}{}
	}
	return set, nil
}

func (s ChannelSet) Has(ch Channel) bool {
	_, ok := s[ch]
	return ok
}

// Clone returns an independent copy of the set.
func (s ChannelSet) Clone() ChannelSet {
	out := make(ChannelSet, len(s))
	for ch := range s {
		out[ch] = struct{}{}
	}
	return out
}

// Sorted returns the members in catalog order.
func (s ChannelSet) Sorted() []Channel {
	out := make([]Channel, 0, len(s))
	for _, ch := range catalog {
		if s.Has(ch) {
			out = append(out, ch)
		}
	}
	return out
}
