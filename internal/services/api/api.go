// Package api provides the HTTP API for the dashboard
package api

import (
	"time"

	"tsdash/internal/platform/config"
	"tsdash/internal/platform/logger"
	phttp "tsdash/internal/platform/net/http"
	"tsdash/internal/platform/store"

	"tsdash/internal/core/version"
	"tsdash/internal/modkit"
	"tsdash/internal/modkit/httpkit"
	"tsdash/internal/modkit/module"
	"tsdash/internal/modkit/swaggerkit"

	metamod "tsdash/internal/services/api/meta/module"
	plotmod "tsdash/internal/services/api/plot/module"
	seriesdomain "tsdash/internal/services/api/series/domain"
	seriesmod "tsdash/internal/services/api/series/module"
	sessionsdomain "tsdash/internal/services/api/sessions/domain"
	sessionsmod "tsdash/internal/services/api/sessions/module"
)

// Options are the API options
type Options struct {
	// Config is the root config; modules read CORE_API_* keys under it
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
	CORSOrigins    []string
	Timeout        time.Duration
	SlowRequest    time.Duration
}

// OptionsFromEnv reads the API toggles from CORE_API_*
func OptionsFromEnv(root config.Conf, st *store.Store) Options {
	c := root.Prefix("CORE_API_")
	return Options{
		Config:         root,
		Store:          st,
		Logger:         logger.Get(),
		EnableSwagger:  c.MayBool("ENABLE_SWAGGER", true),
		EnableProfiler: c.MayBool("ENABLE_PPROF", false),
		CORSOrigins:    c.MayCSV("CORS_ORIGINS", nil),
		Timeout:        c.MayDuration("TIMEOUT", 30*time.Second),
		SlowRequest:    c.MayDuration("SLOW_REQUEST", time.Second),
	}
}

// Modules constructs every API module in dependency order
// series and sessions come first so plot can take their ports
func Modules(deps modkit.Deps) []module.Module {
	seriesMod := seriesmod.New(deps)
	sessionsMod := sessionsmod.New(deps)

	plotMod := plotmod.New(
		deps,
		modkit.WithPorts(plotmod.Ports{
			Series:   module.MustPortsOf[seriesdomain.Retriever](seriesMod),
			Sessions: module.MustPortsOf[sessionsdomain.Port](sessionsMod),
		}),
	)

	return []module.Module{
		metamod.New(deps),
		seriesMod,
		sessionsMod,
		plotMod,
	}
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	log := logger.Get()
	if opt.Logger != nil {
		log = opt.Logger
	}

	deps := modkit.Deps{
		Log: *log,
		Cfg: opt.Config.Prefix("CORE_"),
	}
	if opt.Store != nil {
		if opt.Store.PG != nil {
			deps.PG = opt.Store.PG
		}
		if opt.Store.CH != nil {
			deps.CH = opt.Store.CH
		}
	}

	mods := Modules(deps)

	swaggerkit.SetInfo("tsdash API", version.Version())

	stack := httpkit.CommonStack(httpkit.StackOptions{
		Timeout:     opt.Timeout,
		CORSOrigins: opt.CORSOrigins,
		SlowRequest: opt.SlowRequest,
	})
	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		names := make([]string, 0, len(mods))
		for _, m := range mods {
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
			names = append(names, m.Name()+"@"+module.PrefixOf(m))
		}
		log.Info().Strs("modules", names).Bool("swagger", opt.EnableSwagger).Msg("api mounted")
	})
}
