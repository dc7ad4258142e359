package login

type InputRestModel struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
