package internal

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"ipay/entity"
)

func TestNewForm_FieldOrder(t *testing.T) {
	form := NewForm(fixtureRequest(), "abc")

	want := []string{"live", "oid", "inv", "ttl", "tel", "eml", "vid", "curr", "p1", "p2", "p3", "p4", "lbk", "cbk", "cst", "crl", "hsh",
		"mpesa", "airtel", "equity", "mobilebanking", "debitcard", "creditcard", "mkoporahisi", "saida"}
	keys := make([]string, 0, len(form))
	for _, field := range form {
		keys = append(keys, field.Key)
	}
	require.Equal(t, want, keys)

	hash, _ := form.Get("hsh")
	assert.Equal(t, "abc", hash)
	amount, _ := form.Get("ttl")
	assert.Equal(t, "10", amount)
}

func TestNewForm_ChannelFlags(t *testing.T) {
	form := NewForm(fixtureRequest(), "abc")
	flags := map[string]string{
		"mpesa": "1", "airtel": "1", "equity": "1", "mobilebanking": "0",
		"debitcard": "1", "creditcard": "1", "mkoporahisi": "0", "saida": "0",
	}
	for key, want := range flags {
		got, ok := form.Get(key)
		require.True(t, ok, key)
		assert.Equal(t, want, got, key)
	}

	request := fixtureRequest()
	request.Channels, _ = entity.NewChannelSet(entity.ChannelSaida)
	form = NewForm(request, "abc")
	for _, ch := range entity.Channels() {
		got, _ := form.Get(ch.String())
		if ch == entity.ChannelSaida {
			assert.Equal(t, "1", got)
		} else {
			assert.Equal(t, "0", got, ch.String())
		}
	}
}

func TestNewForm_SecretNotSent(t *testing.T) {
	request := fixtureRequest()
	request.Vendor.Secret = "very-secret-key"
	form := NewForm(request, "abc")
	for _, field := range form {
		assert.NotEqual(t, "very-secret-key", field.Value, field.Key)
	}
}

func TestForm_EncodeKeepsOrder(t *testing.T) {
	form := Form{{"z", "1"}, {"a", "x y"}, {"m", "a&b"}}
	assert.Equal(t, "z=1&a=x+y&m=a%26b", form.Encode())

	values, err := url.ParseQuery(form.Encode())
	require.NoError(t, err)
	assert.Equal(t, "a&b", values.Get("m"))
}
