package registry_test

import (
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/veedubyou/vocal-split/src/shared/config"
	"github.com/veedubyou/vocal-split/src/shared/config/envvar"
	"github.com/veedubyou/vocal-split/src/shared/config/prod"
	"github.com/veedubyou/vocal-split/src/shared/config/registry"
	. "github.com/veedubyou/vocal-split/src/shared/testing"
)

var _ = Describe("ChartSourceFromEnv", func() {
	setEnv := func(key string, value string) {
		previous, wasSet := os.LookupEnv(key)
		ExpectWithOffset(1, os.Setenv(key, value)).To(Succeed())

		DeferCleanup(func() {
			if wasSet {
				_ = os.Setenv(key, previous)
			} else {
				_ = os.Unsetenv(key)
			}
		})
	}

	BeforeEach(func() {
		SetTestEnv()
		setEnv(envvar.CHART_REGISTRY_PATH, "")
		setEnv(envvar.CHART_REGISTRY_SQLITE_PATH, "")
		setEnv(envvar.CHART_REGISTRY_DYNAMO_TABLE, "")
	})

	It("prefers a chart file", func() {
		setEnv(envvar.CHART_REGISTRY_PATH, "/charts/charts.json")
		setEnv(envvar.CHART_REGISTRY_SQLITE_PATH, "/charts/charts.db")

		Expect(registry.ChartSourceFromEnv()).To(Equal(config.FileChartSource{Path: "/charts/charts.json"}))
	})

	It("falls back to sqlite", func() {
		setEnv(envvar.CHART_REGISTRY_SQLITE_PATH, "/charts/charts.db")

		Expect(registry.ChartSourceFromEnv()).To(Equal(config.SQLiteChartSource{Path: "/charts/charts.db"}))
	})

	It("has no default in tests", func() {
		Expect(func() { registry.ChartSourceFromEnv() }).To(Panic())
	})

	Describe("In production", func() {
		BeforeEach(func() {
			setEnv(envvar.ENVIRONMENT, "production")
			setEnv(envvar.AWS_ACCESS_KEY_ID, "key-id")
			setEnv(envvar.AWS_SECRET_ACCESS_KEY, "secret")
			setEnv(envvar.AWS_REGION, "")
		})

		It("reads the charts table", func() {
			source := ExpectType[config.DynamoChartSource](registry.ChartSourceFromEnv())
			Expect(source.TableName).To(Equal(prod.ChartsTableName))
			Expect(source.Dynamo).To(Equal(config.ProdDynamo{
				AccessKeyID:     "key-id",
				SecretAccessKey: "secret",
				Region:          prod.DynamoDBRegion,
			}))
		})

		It("can be pointed at another table", func() {
			setEnv(envvar.CHART_REGISTRY_DYNAMO_TABLE, "ChartsStaging")

			source := ExpectType[config.DynamoChartSource](registry.ChartSourceFromEnv())
			Expect(source.TableName).To(Equal("ChartsStaging"))
		})
	})

	Describe("In development", func() {
		BeforeEach(func() {
			setEnv(envvar.ENVIRONMENT, "development")
		})

		It("uses the local chart file", func() {
			source := ExpectType[config.FileChartSource](registry.ChartSourceFromEnv())
			Expect(source.Path).To(HaveSuffix("wd/charts.json"))
		})

		It("uses local dynamo when a table is named", func() {
			setEnv(envvar.CHART_REGISTRY_DYNAMO_TABLE, "Charts")

			source := ExpectType[config.DynamoChartSource](registry.ChartSourceFromEnv())
			Expect(source.TableName).To(Equal("Charts"))
			ExpectType[config.LocalDynamo](source.Dynamo)
		})
	})
})
