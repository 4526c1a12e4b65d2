package main

import (
	"fmt"
	"log"
	"os"

	"github.com/fatih/color"

	"github.com/neuroval/validation-client/catalog"
	"github.com/neuroval/validation-client/framework"
	"github.com/neuroval/validation-client/report"
	"github.com/neuroval/validation-client/workflow"
)

func main() {
	var params commandParams
	if !params.Read(os.Args) {
		os.Exit(1)
	}

	if err := run(params); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run(params commandParams) error {
	env, err := catalog.LookupEnvironment(params.environment, params.envFile)
	if err != nil {
		return err
	}

	logger := framework.NullLogger()
	if params.debug {
		logger = log.New(os.Stdout, "", log.LstdFlags)
	}

	client := catalog.NewClient(env, logger)
	if params.token != "" {
		client.SetToken(params.token)
	} else if err := client.Authenticate(params.username, params.password); err != nil {
		return err
	}

	switch params.mode {
	case "prepare":
		return doPrepare(client, logger, params)
	case "upload":
		return doUpload(client, logger, params)
	case "report":
		return doReport(client, logger, params)
	}
	return fmt.Errorf("unknown command %q", params.mode)
}

func doPrepare(client *catalog.Client, logger framework.Logger, params commandParams) error {
	preparer := workflow.Preparer{
		Library: catalog.NewTestLibrary(client),
		Logger:  logger,
	}
	configPath, err := preparer.Prepare(workflow.PrepareOptions{
		TestInstanceID: params.testInstanceID,
		TestID:         params.testID,
		TestAlias:      params.testAlias,
		TestVersion:    params.testVersion,
		BaseDir:        params.baseDir,
		Namespace:      params.namespace,
	})
	if err != nil {
		return err
	}
	color.Green("Test run prepared: %s", configPath)
	return nil
}

func doUpload(client *catalog.Client, logger framework.Logger, params commandParams) error {
	uploader := workflow.Uploader{
		ModelCatalog: catalog.NewModelCatalog(client),
		Library:      catalog.NewTestLibrary(client),
		Logger:       logger,
	}
	resultID, score, err := uploader.Upload(params.scorePath, workflow.UploadOptions{
		StorageCollabID: params.storageCollabID,
	})
	if err != nil {
		return err
	}
	color.Green("Result registered: %s (score %v)", resultID, score.Value)
	return nil
}

func doReport(client *catalog.Client, logger framework.Logger, params commandParams) error {
	generator := report.Generator{
		ModelCatalog: catalog.NewModelCatalog(client),
		Library:      catalog.NewTestLibrary(client),
		Logger:       logger,
	}
	validIDs, reportPath, err := generator.Generate(params.resultIDs, report.Options{
		OutDir:       params.reportDir,
		OnlyCombined: params.onlyCombined,
	})
	if err != nil {
		return err
	}
	if len(validIDs) < len(params.resultIDs) {
		color.Yellow("%d of %d result IDs were invalid; see the report cover page",
			len(params.resultIDs)-len(validIDs), len(params.resultIDs))
	}
	color.Green("Report generated: %s", reportPath)
	return nil
}
