package xnet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRange(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantStart string
		wantEnd   string
	}{
		{"单 IP", "192.168.1.1", "192.168.1.1", "192.168.1.1"},
		{"CIDR", "192.168.1.0/24", "192.168.1.0", "192.168.1.255"},
		{"CIDR 未对齐", "192.168.1.77/24", "192.168.1.0", "192.168.1.255"},
		{"掩码", "10.0.0.0/255.0.0.0", "10.0.0.0", "10.255.255.255"},
		{"显式范围", "10.0.0.1-10.0.0.100", "10.0.0.1", "10.0.0.100"},
		{"范围两侧空白", " 10.0.0.1 - 10.0.0.100 ", "10.0.0.1", "10.0.0.100"},
		{"斜杠两侧空白", "172.16.0.0 / 16", "172.16.0.0", "172.16.255.255"},
		{"IPv4-mapped 单 IP", "::ffff:192.168.1.1", "192.168.1.1", "192.168.1.1"},
		{"IPv4-mapped CIDR", "::ffff:192.168.1.0/120", "192.168.1.0", "192.168.1.255"},
		{"全空间", "0.0.0.0/0", "0.0.0.0", "255.255.255.255"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := ParseRange(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, r.From().String())
			assert.Equal(t, tt.wantEnd, r.To().String())
		})
	}
}

func TestParseRangeInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"空字符串", ""},
		{"垃圾输入", "invalid"},
		{"起点大于终点", "10.0.0.100-10.0.0.1"},
		{"终点无效", "10.0.0.1-abc"},
		{"起点无效", "abc-10.0.0.1"},
		{"CIDR 位数越界", "10.0.0.0/33"},
		{"非连续掩码", "192.168.1.0/255.0.255.0"},
		{"IPv6 单 IP", "2001:db8::1"},
		{"IPv6 CIDR", "2001:db8::/32"},
		{"IPv6 掩码", "192.168.1.0/ffff::"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRange(tt.input)
			assert.ErrorIs(t, err, ErrInvalidRange)
		})
	}
}
