package log

import (
	"fmt"
	"strings"
)

var eventTag = "[event log]"

const (
	TxEvent    = "[tx event]"
	AssetEvent = "[asset event]"
)

func Eventf(eventType, formatMsg string, values ...interface{}) {
	detail := fmt.Sprintf(formatMsg, values...)
	srvLog.Info(strings.Join([]string{eventTag, eventType, detail}, "\t"))
}

func Event(eventType, msg string, ctx ...interface{}) {
	m := strings.Join([]string{eventTag, eventType, msg}, "\t")
	srvLog.Info(m, ctx...)
}
