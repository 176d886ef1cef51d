package providers

import (
	_ "github.com/retainworks/retainbot/src/ai/grok"
	_ "github.com/retainworks/retainbot/src/ai/openai"
)
