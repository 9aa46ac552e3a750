package slack

// --- PAYLOAD: chat.postMessage with block kit ---

type postMessageRequest struct {
	Channel string  `json:"channel"`
	Text    string  `json:"text"`
	Blocks  []block `json:"blocks"`
}

type block struct {
	Type     string       `json:"type"`
	Text     *textObject  `json:"text,omitempty"`
	Fields   []textObject `json:"fields,omitempty"`
	Elements []textObject `json:"elements,omitempty"`
}

type textObject struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// --- RESPONSE ---

type postMessageResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}
