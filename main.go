package main

import (
	"os"

	"note/api/contexts"
	gam "note/api/middleware"
	"note/api/models"
	conversionsMvc "note/api/mvc/conversions"
	serviceInfoMvc "note/api/mvc/service-info"
	workflowsMvc "note/api/mvc/workflows"
	"note/api/services"
	"note/api/services/sanitation"
	"note/api/utils"

	es7 "github.com/elastic/go-elasticsearch/v7"
	"github.com/kelseyhightower/envconfig"
	"github.com/labstack/echo"
	"github.com/labstack/echo/middleware"
	log "github.com/sirupsen/logrus"
)

func main() {
	// Gather environment variables
	var cfg models.Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		log.Error(err)
		os.Exit(2)
	}

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}

	log.WithFields(log.Fields{
		"debug":                          cfg.Debug,
		"vcfPath":                        cfg.Api.VcfPath,
		"outputPath":                     cfg.Api.OutputPath,
		"outputSuffix":                   cfg.Conversion.OutputSuffix,
		"fileProcessingConcurrencyLevel": cfg.Api.FileProcessingConcurrencyLevel,
		"maxLineBytes":                   cfg.Api.MaxLineBytes,
		"indexIntoElasticsearch":         cfg.Conversion.IndexIntoElasticsearch,
		"elasticsearchUrl":               cfg.Elasticsearch.Url,
		"elasticsearchUsername":          cfg.Elasticsearch.Username,
		"sanitationAt":                   cfg.Sanitation.At,
		"retentionHours":                 cfg.Sanitation.RetentionHours,
		"port":                           cfg.Api.Port,
	}).Info("Using configuration")

	// Instantiate Server
	e := echo.New()

	// Service Connections:
	// -- Elasticsearch (optional)
	var es *es7.Client
	if cfg.Elasticsearch.Url != "" {
		es, err = utils.CreateEsConnection(&cfg)
		if err != nil {
			log.Fatal(err)
		}
	} else if cfg.Conversion.IndexIntoElasticsearch {
		log.Fatal("indexing into Elasticsearch requires an Elasticsearch url")
	}

	// Service Singletons
	cs, err := services.NewConversionService(es, &cfg)
	if err != nil {
		log.Fatal(err)
	}
	ss := sanitation.NewSanitationService(cs, &cfg)
	defer ss.Stop()

	// Configure Server
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET},
	}))

	// -- Override handlers with "custom Note" context
	//		to be able to provide variables and global singletons
	e.Use(func(h echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cc := &contexts.NoteContext{
				Context:           c,
				Es7Client:         es,
				Config:            &cfg,
				ConversionService: cs,
			}
			return h(cc)
		}
	})

	// Begin MVC Routes
	// -- Root
	e.GET("/", serviceInfoMvc.GetWelcome)

	// -- Service Info
	e.GET("/service-info", serviceInfoMvc.GetServiceInfo)

	// -- Conversions
	e.GET("/conversions/run", conversionsMvc.ConversionsRun,
		// middleware
		gam.MandateVcfGzFileNamesAttribute)
	e.GET("/conversions/requests", conversionsMvc.GetAllConversionRequests)
	e.GET("/conversions/stats", conversionsMvc.ConversionsStats)

	// -- Workflows
	e.GET("/workflows", workflowsMvc.WorkflowsGet)

	// Run
	e.Logger.Fatal(e.Start(":" + cfg.Api.Port))
}
