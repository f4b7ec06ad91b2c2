package initializers

import (
	"context"

	"fin-tools-backend/config"
	"fin-tools-backend/fiberlog"
	applicationhandler "fin-tools-backend/lib/application"
	authhandler "fin-tools-backend/lib/auth"
	contracthandler "fin-tools-backend/lib/contract"
	xlsexport "fin-tools-backend/lib/export/xls"
	filestorage "fin-tools-backend/lib/file-storage"
	invoicehandler "fin-tools-backend/lib/invoice"
	notificationhandler "fin-tools-backend/lib/notification"
	producthandler "fin-tools-backend/lib/product"
	reviewhandler "fin-tools-backend/lib/review"
)

var LoggerConfig *fiberlog.Config

// InitAllServices wires the singleton handlers; order matters, a handler may
// capture the Instance of one initialized before it.
func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitS3()
	InitRedis()
	InitSmtp()
	filestorage.NewHandler()
	authhandler.NewHandler()
	producthandler.NewHandler(RedisClient)
	contracthandler.NewHandler()
	invoicehandler.NewHandler()
	notificationhandler.NewHandler()
	xlsexport.NewHandler()
	applicationhandler.NewHandler()
	reviewhandler.NewHandler()
}
