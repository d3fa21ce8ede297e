package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/akashkatakam/vehicle-sales-system/internal/dbrepo"
	"github.com/akashkatakam/vehicle-sales-system/internal/models"
	"github.com/akashkatakam/vehicle-sales-system/internal/utils"
	"github.com/go-chi/chi/v5"
)

type UserHandler struct {
	DB       *dbrepo.UserRepo
	infoLog  *log.Logger
	errorLog *log.Logger
}

func NewUserHandler(db *dbrepo.UserRepo, infoLog *log.Logger, errorLog *log.Logger) *UserHandler {
	return &UserHandler{
		DB:       db,
		infoLog:  infoLog,
		errorLog: errorLog,
	}
}

// AddUser handles POST /users/new. Roles and branches are stored as
// comma-separated claims; "ALL" in branches grants every branch.
func (u *UserHandler) AddUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username" validate:"required,min=3"`
		Name     string `json:"name" validate:"required"`
		Password string `json:"password" validate:"required,min=6"`
		Roles    string `json:"roles" validate:"required"`
		Branches string `json:"branches" validate:"required"`
	}
	if err := utils.ReadAndValidate(w, r, &req); err != nil {
		u.errorLog.Println("AddUser_ReadJSON:", err)
		utils.BadRequest(w, err)
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		u.errorLog.Println("AddUser_Hash:", err)
		utils.ServerError(w, err)
		return
	}

	user := &models.User{
		Username: strings.TrimSpace(req.Username),
		Name:     req.Name,
		Password: hashed,
		Roles:    req.Roles,
		Branches: req.Branches,
		Active:   true,
	}
	if err := u.DB.CreateUser(r.Context(), user); err != nil {
		u.errorLog.Println("AddUser_DB:", err)
		if strings.Contains(err.Error(), "Duplicate") {
			utils.Conflict(w, err.Error())
			return
		}
		utils.ServerError(w, err)
		return
	}

	u.infoLog.Printf("user %s created (id %d)", user.Username, user.ID)

	resp := map[string]any{
		"error":   false,
		"status":  "success",
		"message": "User created successfully",
		"user":    user,
	}
	utils.WriteJSON(w, http.StatusCreated, resp)
}

// GetUsers handles GET /users
func (u *UserHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := u.DB.ListUsers(r.Context())
	if err != nil {
		u.errorLog.Println("GetUsers_DB:", err)
		utils.ServerError(w, err)
		return
	}

	resp := map[string]any{
		"error":  false,
		"status": "success",
		"users":  users,
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}

// UpdatePassword handles PUT /users/{id}/password
func (u *UserHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || userID == 0 {
		utils.BadRequest(w, errors.New("invalid user ID"))
		return
	}

	var req struct {
		Password string `json:"password" validate:"required,min=6"`
	}
	if err := utils.ReadAndValidate(w, r, &req); err != nil {
		u.errorLog.Println("UpdatePassword_ReadJSON:", err)
		utils.BadRequest(w, err)
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		u.errorLog.Println("UpdatePassword_Hash:", err)
		utils.ServerError(w, err)
		return
	}

	if err := u.DB.UpdateUserPassword(r.Context(), userID, hashed); err != nil {
		u.errorLog.Println("UpdatePassword_DB:", err)
		utils.NotFound(w, err.Error())
		return
	}

	resp := map[string]any{
		"error":   false,
		"status":  "success",
		"message": "Password updated successfully",
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}

// UpdateAccess handles PUT /users/{id}/access: roles, branch grants, and
// the active flag together.
func (u *UserHandler) UpdateAccess(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || userID == 0 {
		utils.BadRequest(w, errors.New("invalid user ID"))
		return
	}

	var req struct {
		Roles    string `json:"roles" validate:"required"`
		Branches string `json:"branches" validate:"required"`
		Active   bool   `json:"active"`
	}
	if err := utils.ReadAndValidate(w, r, &req); err != nil {
		u.errorLog.Println("UpdateAccess_ReadJSON:", err)
		utils.BadRequest(w, err)
		return
	}

	user := &models.User{
		ID:       userID,
		Roles:    req.Roles,
		Branches: req.Branches,
		Active:   req.Active,
	}
	if err := u.DB.UpdateUserAccess(r.Context(), user); err != nil {
		u.errorLog.Println("UpdateAccess_DB:", err)
		utils.NotFound(w, err.Error())
		return
	}

	// tokens carry the old claims until they expire; return the stored
	// account so the admin screen shows what the next sign-in will grant
	updated, err := u.DB.GetUserByID(r.Context(), userID)
	if err != nil {
		u.errorLog.Println("UpdateAccess_Reload:", err)
		utils.ServerError(w, err)
		return
	}

	resp := map[string]any{
		"error":   false,
		"status":  "success",
		"message": "Access updated successfully",
		"user":    updated,
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}
