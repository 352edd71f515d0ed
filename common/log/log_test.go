package log

import (
	"testing"

	"github.com/inconshreveable/log15"
	"github.com/stretchr/testify/assert"
)

func TestWarn(t *testing.T) {
	Setup(LevelWarn, false, false)
	Debug("should be invisible")
	Info("should be invisible")
	Warn("汉字")
	Error("👽🚀")

	Setup(LevelDebug, false, false)
	Debug("debug level visible")
	Info("info level visible")

	Setup(LevelDebug, false, true)
	Debug("show code line")
	Info("show code line")
}

func TestEvent(t *testing.T) {
	var records []*log15.Record
	SetHandler(log15.FuncHandler(func(r *log15.Record) error {
		records = append(records, r)
		return nil
	}))
	defer Setup(LevelInfo, false, false)

	Event(AssetEvent, "Created", "owner", "0x01")
	Eventf(TxEvent, "%d failed", 3)
	assert.Equal(t, 2, len(records))
	assert.Equal(t, "[event log]\t[asset event]\tCreated", records[0].Msg)
	assert.Equal(t, []interface{}{"owner", "0x01"}, records[0].Ctx)
	assert.Equal(t, "[event log]\t[tx event]\t3 failed", records[1].Msg)
}

func TestParseLevel(t *testing.T) {
	lv, err := ParseLevel("5")
	assert.NoError(t, err)
	assert.Equal(t, LevelDebug, lv)
	lv, err = ParseLevel("warn")
	assert.NoError(t, err)
	assert.Equal(t, LevelWarn, lv)
	_, err = ParseLevel("loud")
	assert.Error(t, err)
}
