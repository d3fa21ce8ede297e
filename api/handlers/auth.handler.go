package api

import (
	"log"
	"net/http"

	"github.com/akashkatakam/vehicle-sales-system/internal/dbrepo"
	"github.com/akashkatakam/vehicle-sales-system/internal/models"
	"github.com/akashkatakam/vehicle-sales-system/internal/utils"
)

type AuthHandler struct {
	DB       *dbrepo.UserRepo
	JWT      models.JWTConfig
	infoLog  *log.Logger
	errorLog *log.Logger
}

func NewAuthHandler(db *dbrepo.UserRepo, jwtConfig models.JWTConfig, infoLog *log.Logger, errorLog *log.Logger) *AuthHandler {
	return &AuthHandler{
		DB:       db,
		JWT:      jwtConfig,
		infoLog:  infoLog,
		errorLog: errorLog,
	}
}

// Signin handles POST /signin
func (a *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}
	if err := utils.ReadAndValidate(w, r, &creds); err != nil {
		a.errorLog.Println("Signin_ReadJSON:", err)
		utils.BadRequest(w, err)
		return
	}

	denied := models.Response{
		Error:   true,
		Status:  "failed",
		Message: "invalid username or password",
	}

	user, err := a.DB.GetUserByUsername(r.Context(), creds.Username)
	if err != nil {
		a.errorLog.Println("Signin_DB:", err)
		utils.WriteJSON(w, http.StatusUnauthorized, denied)
		return
	}
	if !user.Active {
		utils.WriteJSON(w, http.StatusUnauthorized, models.Response{
			Error:   true,
			Status:  "failed",
			Message: "account is disabled",
		})
		return
	}
	if !utils.CheckPassword(creds.Password, user.Password) {
		utils.WriteJSON(w, http.StatusUnauthorized, denied)
		return
	}

	token, err := utils.GenerateJWT(models.JWT{
		ID:       user.ID,
		Name:     user.Name,
		Username: user.Username,
		Roles:    user.Roles,
		Branches: user.Branches,
	}, a.JWT)
	if err != nil {
		a.errorLog.Println("Signin_JWT:", err)
		utils.ServerError(w, err)
		return
	}

	a.infoLog.Printf("user %s signed in", user.Username)

	resp := map[string]any{
		"error":   false,
		"status":  "success",
		"message": "Signin successful",
		"token":   token,
		"user": map[string]any{
			"id":       user.ID,
			"name":     user.Name,
			"username": user.Username,
			"roles":    user.Roles,
			"branches": user.Branches,
		},
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}
