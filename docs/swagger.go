package docs

// @title 养老金产品推荐系统 API
// @version 3.0
// @description 基于真实养老保险数据的智能推荐系统，专为Dify工作流设计
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /
// @schemes http https
