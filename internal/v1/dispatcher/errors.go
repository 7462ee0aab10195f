package dispatcher

import "encoding/json"

func marshal(event string, payload any) Message {
	data, _ := json.Marshal(payload)
	return Message{Event: event, Payload: data}
}

func errorMessage(reason string) Message {
	return marshal(EventError, errorPayload{Message: reason})
}

func invalidMoveMessage(reason string) Message {
	return marshal(EventInvalidMove, invalidMovePayload{Reason: reason})
}
