package shared

import (
	"fmt"

	"github.com/zestdev/zest/database/models"
)

func GetSession(ctx Context) AuthSession {
	session, ok := ctx.Get("session").(AuthSession)
	if !ok {
		return NoSession
	}
	return session
}

func SetSession(ctx Context, session AuthSession) {
	ctx.Set("session", session)
}

func GetApp(ctx Context) models.App {
	return ctx.Get("app").(models.App)
}

func SetApp(ctx Context, app models.App) {
	ctx.Set("app", app)
}

func GetAppSlug(ctx Context) (string, error) {
	slug := SanitizeParam(ctx.Param("appSlug"))
	if slug == "" {
		return "", fmt.Errorf("could not get app slug")
	}
	return slug, nil
}

func GetScript(ctx Context) models.Script {
	return ctx.Get("script").(models.Script)
}

func SetScript(ctx Context, script models.Script) {
	ctx.Set("script", script)
}

func GetScriptFilename(ctx Context) (string, error) {
	filename := SanitizeParam(ctx.Param("filename"))
	if filename == "" {
		return "", fmt.Errorf("could not get script filename")
	}
	return filename, nil
}

func IsPublicRequest(ctx Context) bool {
	return ctx.Get("publicRequest") != nil
}

func SetIsPublicRequest(ctx Context) {
	ctx.Set("publicRequest", true)
}
