package setup

import (
	studentHandler "github.com/gang678/studentdocument/internal/handler/student"
	"github.com/gang678/studentdocument/internal/repo/mysql"
	studentService "github.com/gang678/studentdocument/internal/service/student"

	"gorm.io/gorm"
)

// BuildStudentModule 构建学生档案模块
func BuildStudentModule(db *gorm.DB) *StudentModule {
	checkInfoService := studentService.NewCheckInfoService(mysql.NewCheckInfoRepository(db))
	return &StudentModule{
		CheckInfoHandler: studentHandler.NewCheckInfoHandler(checkInfoService),
		CheckInfoService: checkInfoService,
	}
}
