package studentapi

import "studentfees/cmd/student"

// Request bodies may carry an accessToken field: the body is the second
// accepted token location after the cookie and before the bearer header.

type registerRequest struct {
	FullName    string `json:"fullname"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	AccessToken string `json:"accessToken"`
}

type loginRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	AccessToken string `json:"accessToken"`
}

type updateRequest struct {
	FullName    string `json:"fullname"`
	Email       string `json:"email"`
	AccessToken string `json:"accessToken"`
}

type tokenOnlyRequest struct {
	AccessToken string `json:"accessToken"`
}

type loginResponse struct {
	Student      student.View `json:"student"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}
