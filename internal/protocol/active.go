package protocol

// ActiveTestRequest is a keepalive probe; both directions have empty bodies.
type ActiveTestRequest struct{}

func (ActiveTestRequest) Command() Command { return ActiveTest }

func (ActiveTestRequest) EncodeBody() []byte { return []byte{} }

// QuitRequest tells the server to close the connection. No reply is sent.
type QuitRequest struct{}

func (QuitRequest) Command() Command { return Quit }

func (QuitRequest) EncodeBody() []byte { return []byte{} }
