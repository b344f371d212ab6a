package io

import (
	"github.com/ezrec/ls8/translate"
)

var (
	// Channel errors
	ErrChannelClosed = translate.Error("channel closed")
)
