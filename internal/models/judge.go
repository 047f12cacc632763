package models

import "golang.org/x/crypto/bcrypt"

// Judge scores candidates live. IsActive gates login without deleting the
// judge's scoring history.
type Judge struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Title        string `json:"title"`
	PasswordHash string `json:"passwordHash"`
	IsActive     bool   `json:"isActive"`
}

func (j *Judge) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	j.PasswordHash = string(hash)
	return nil
}

func (j *Judge) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(j.PasswordHash), []byte(password)) == nil
}

// PublicJudge is the judge as exposed to clients and events, without the
// credential hash.
type PublicJudge struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Title    string `json:"title"`
	IsActive bool   `json:"isActive"`
}

func (j *Judge) Public() PublicJudge {
	return PublicJudge{ID: j.ID, Name: j.Name, Title: j.Title, IsActive: j.IsActive}
}
