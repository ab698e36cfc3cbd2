// api/router.go
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"holocron/internal/catalog"
	"holocron/internal/logging"
	"holocron/internal/model"

	"github.com/gin-gonic/gin"
)

// resource — набор операций одного ресурса; create/remove == nil для read-only.
type resource[T any] struct {
	path   string
	kind   string
	list   func(context.Context) ([]T, error)
	get    func(context.Context, int64) (T, error)
	create func(context.Context, catalog.Payload) (T, error)
	remove func(context.Context, int64) error
}

func mount[T any](r gin.IRouter, log logging.Logger, res resource[T]) {
	g := r.Group(res.path)
	g.GET("", ListHandler(res.list, log))
	g.GET("/:id", GetOneHandler(res.kind, res.get, log))
	if res.create != nil {
		g.POST("", CreateHandler(res.create, log))
	}
	if res.remove != nil {
		g.DELETE("/:id", DeleteHandler(res.remove, log))
	}
}

func NewRouter(svc *catalog.Service, log logging.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(log))

	r.GET("/", SitemapListHandler(r))

	mount(r, log, resource[model.Color]{
		path: "/colors", kind: model.KindColor,
		list: svc.ListColors, get: svc.GetColor, create: svc.CreateColor, remove: svc.DeleteColor,
	})
	mount(r, log, resource[model.Gender]{
		path: "/genders", kind: model.KindGender,
		list: svc.ListGenders, get: svc.GetGender, create: svc.CreateGender, remove: svc.DeleteGender,
	})
	mount(r, log, resource[model.Planet]{
		path: "/planets", kind: model.KindPlanet,
		list: svc.ListPlanets, get: svc.GetPlanet, create: svc.CreatePlanet, remove: svc.DeletePlanet,
	})
	mount(r, log, resource[model.Character]{
		path: "/people", kind: model.KindCharacter,
		list: svc.ListCharacters, get: svc.GetCharacter, create: svc.CreateCharacter, remove: svc.DeleteCharacter,
	})
	mount(r, log, resource[model.Favorite]{
		path: "/favorites", kind: model.KindFavorite,
		list: svc.ListFavorites, get: svc.GetFavorite, create: svc.CreateFavorite, remove: svc.DeleteFavorite,
	})
	mount(r, log, resource[model.User]{
		path: "/users", kind: model.KindUser,
		list: svc.ListUsers, get: svc.GetUser,
	})
	mount(r, log, resource[model.Entity]{
		path: "/entities", kind: model.KindEntity,
		list: svc.ListEntities, get: svc.GetEntity,
	})

	return r
}

// RunServer слушает addr до отмены ctx, затем мягко гасит сервер.
func RunServer(ctx context.Context, addr string, handler http.Handler, log logging.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "http server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	log.Info(shutdownCtx, "http server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
