package account

const (
	EnvCommandTopicCreateAccount = "COMMAND_TOPIC_CREATE_ACCOUNT"
	EnvEventTopicAccountStatus   = "EVENT_TOPIC_ACCOUNT_STATUS"

	EventAccountStatusCreated = "CREATED"
	EventAccountStatusUpdated = "UPDATED"
)

type createCommand struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type statusEvent struct {
	AccountId uint32 `json:"account_id"`
	Username  string `json:"username"`
	Status    string `json:"status"`
}
