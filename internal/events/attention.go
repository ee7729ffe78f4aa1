package events

// AttentionType classifies what kind of external input a backend needs.
type AttentionType uint8

const (
	AttentionCredentials AttentionType = iota
	AttentionWeb
	AttentionPKCS
)

var attentionTypeNames = [...]string{
	AttentionCredentials: "CREDENTIALS",
	AttentionWeb:         "WEB",
	AttentionPKCS:        "PKCS",
}

func (t AttentionType) String() string {
	if int(t) < len(attentionTypeNames) {
		return attentionTypeNames[t]
	}
	return "UNKNOWN"
}

// AttentionGroup narrows an AttentionType to the concrete item needed.
type AttentionGroup uint8

const (
	AttentionUserPassword AttentionGroup = iota
	AttentionHTTPProxy
	AttentionPrivateKey
	AttentionOpenURL
)

var attentionGroupNames = [...]string{
	AttentionUserPassword: "USER_PASSWORD",
	AttentionHTTPProxy:    "HTTP_PROXY",
	AttentionPrivateKey:   "PRIVATE_KEY",
	AttentionOpenURL:      "OPEN_URL",
}

func (g AttentionGroup) String() string {
	if int(g) < len(attentionGroupNames) {
		return attentionGroupNames[g]
	}
	return "UNKNOWN"
}
