package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// JSONResponse defines the uniform envelope for API responses.
type JSONResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Respond writes a JSON envelope with the given HTTP status code.
func Respond(ctx *gin.Context, httpStatus int, status string, message string, data interface{}) {
	ctx.JSON(httpStatus, JSONResponse{
		Status:  status,
		Message: message,
		Data:    data,
	})
}

// Success returns a 200 success envelope.
func Success(ctx *gin.Context, message string, data interface{}) {
	Respond(ctx, http.StatusOK, "success", message, data)
}

// Created returns a 201 success envelope.
func Created(ctx *gin.Context, message string, data interface{}) {
	Respond(ctx, http.StatusCreated, "success", message, data)
}

// Error returns a standard error envelope.
func Error(ctx *gin.Context, httpStatus int, message string) {
	Respond(ctx, httpStatus, "error", message, nil)
}
