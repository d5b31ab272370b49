package initializers

import (
	"context"

	"template-approval-backend/config"
	"template-approval-backend/fiberlog"
	authhandler "template-approval-backend/lib/auth"
	departmentprovider "template-approval-backend/lib/dicts/department"
	unitprovider "template-approval-backend/lib/dicts/unit"
	employeehandler "template-approval-backend/lib/employee"
	xlsexport "template-approval-backend/lib/export/xls"
	formhandler "template-approval-backend/lib/form"
	notificationhandler "template-approval-backend/lib/notification"
	notificationworker "template-approval-backend/lib/notification/worker"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitS3()
	InitSmtp()
	departmentprovider.NewHandler()
	unitprovider.NewHandler()
	employeehandler.NewHandler()
	authhandler.NewHandler()
	notificationhandler.NewHandler()
	formhandler.NewHandler()
	xlsexport.NewHandler()
	notificationworker.StartWorker(ctx)
}
