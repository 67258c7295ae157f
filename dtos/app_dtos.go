package dtos

import (
	"time"

	"github.com/google/uuid"
)

type CreateAppRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"max=500"`
	IsPrivate   bool   `json:"isPrivate"`
}

type ForkAppRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type AppDTO struct {
	ID                    uuid.UUID `json:"id"`
	Slug                  string    `json:"slug"`
	Name                  string    `json:"name"`
	Description           string    `json:"description"`
	IsPrivate             bool      `json:"isPrivate"`
	Hash                  string    `json:"hash"`
	SecretsHash           string    `json:"secretsHash"`
	LastDeploymentVersion string    `json:"lastDeploymentVersion"`
	PlaygroundVersionHash string    `json:"playgroundVersionHash"`
	PublishedVersionHash  string    `json:"publishedVersionHash"`
	CreatedAt             time.Time `json:"createdAt"`
	UpdatedAt             time.Time `json:"updatedAt"`
}

type CreateScriptRequest struct {
	Filename   string  `json:"filename" validate:"required,min=1,max=255"`
	Code       string  `json:"code"`
	IsRunnable bool    `json:"isRunnable"`
	ConnectorID *string `json:"connectorId"`
}

type SaveScriptRequest struct {
	Code string `json:"code" validate:"required"`
}

type ScriptDTO struct {
	ID         uuid.UUID `json:"id"`
	AppID      uuid.UUID `json:"appId"`
	BranchName string    `json:"branchName"`
	Filename   string    `json:"filename"`
	Code       string    `json:"code"`
	IsRunnable bool      `json:"isRunnable"`
	ConnectorID *string  `json:"connectorId"`
	Hash       string    `json:"hash"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type SetSecretRequest struct {
	Key   string `json:"key" validate:"required,min=1,max=255"`
	Value string `json:"value" validate:"required"`
}

type RunRequest struct {
	ScriptID *uuid.UUID        `json:"scriptId"`
	RunID    string            `json:"runId" validate:"required,uuid"`
	Inputs   map[string]string `json:"inputs"`
}

type CreateScheduleRequest struct {
	Filename string            `json:"filename" validate:"required"`
	Crontab  string            `json:"crontab" validate:"required"`
	Inputs   map[string]string `json:"inputs"`
}

type AppRunDTO struct {
	ID           uuid.UUID  `json:"id"`
	RunID        uuid.UUID  `json:"runId"`
	ScheduleID   *uuid.UUID `json:"scheduleId"`
	Version      string     `json:"version"`
	DeploymentID string     `json:"deploymentId"`
	Path         string     `json:"path"`
	Success      bool       `json:"success"`
	Result       string     `json:"result"`
	CreatedAt    time.Time  `json:"createdAt"`
}
