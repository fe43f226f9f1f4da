package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// MySQLConfig 定义了 MySQL 数据库的连接配置。
type MySQLConfig struct {
	Address         string `yaml:"address"`         // MySQL 服务器地址
	Username        string `yaml:"username"`        // 用户名
	Password        string `yaml:"password"`        // 密码
	Database        string `yaml:"database"`        // 数据库名称
	MaxOpenConns    int    `yaml:"maxOpenConns"`    // 最大打开连接数
	MaxIdleConns    int    `yaml:"maxIdleConns"`    // 最大空闲连接数
	ConnMaxLifetime int    `yaml:"connMaxLifetime"` // 连接最大生命周期 (秒)
}

// RedisConfig 定义了 Redis 数据库的连接配置。
type RedisConfig struct {
	Address  string `yaml:"address"`  // Redis 服务器地址 (例如: "localhost:6379")
	Password string `yaml:"password"` // Redis 密码
	DB       int    `yaml:"db"`       // Redis 数据库编号
}

// MinIOConfig 定义了 MinIO 对象存储的连接配置。
type MinIOConfig struct {
	Endpoint  string `yaml:"endpoint"`  // MinIO 服务端点
	AccessKey string `yaml:"accessKey"` // 访问密钥
	SecretKey string `yaml:"secretKey"` // Secret 密钥
	Bucket    string `yaml:"bucket"`    // 文档存储桶名称
	Secure    bool   `yaml:"secure"`    // 是否使用HTTPS
}

// MilvusConfig 定义了 Milvus 向量数据库的连接配置。
type MilvusConfig struct {
	Address    string `yaml:"address"`    // Milvus 服务地址
	Collection string `yaml:"collection"` // 向量集合名称
}

// MongoConfig 定义了 MongoDB 数据库的连接配置。
type MongoConfig struct {
	Enabled  bool   `yaml:"enabled"`  // 是否启用聊天记录持久化
	Address  string `yaml:"address"`  // MongoDB 服务器地址
	Username string `yaml:"username"` // 用户名
	Password string `yaml:"password"` // 密码
	Database string `yaml:"database"` // 数据库名称
}

// KafkaConfig 定义了 Kafka 消息队列的连接配置。
type KafkaConfig struct {
	Enabled bool     `yaml:"enabled"` // 是否发布摄取事件
	Brokers []string `yaml:"brokers"` // Kafka Broker 地址列表
	Topic   string   `yaml:"topic"`   // 摄取事件主题
}

// DatabaseConfigs 包含所有数据库的配置。
type DatabaseConfigs struct {
	MySQL   MySQLConfig  `yaml:"mysql"`   // MySQL 数据库配置
	Redis   RedisConfig  `yaml:"redis"`   // Redis 数据库配置
	MinIO   MinIOConfig  `yaml:"minio"`   // MinIO 对象存储配置
	Milvus  MilvusConfig `yaml:"milvus"`  // Milvus 向量数据库配置
	MongoDB MongoConfig  `yaml:"mongodb"` // MongoDB 数据库配置
	Kafka   KafkaConfig  `yaml:"kafka"`   // Kafka 消息队列配置
}

// AuthConfig 用于配置认证服务。
type AuthConfig struct {
	JwtSecret       string `yaml:"jwtSecret"`       // JWT 密钥
	TokenTTLMinutes int    `yaml:"tokenTTLMinutes"` // JWT 令牌的有效期（分钟）
	ListenAddress   string `yaml:"listenAddress"`   // HTTP 监听地址
}

// OpenAIConfig 包含了 OpenAI 模型的配置。
type OpenAIConfig struct {
	APIKey string `yaml:"apiKey"` // OpenAI API 密钥
	Model  string `yaml:"model"`  // 模型名称
}

// OllamaConfig 包含了本地 Ollama 模型的配置。
type OllamaConfig struct {
	BaseURL string `yaml:"baseURL"` // Ollama 服务地址，为空时使用默认地址
	Model   string `yaml:"model"`   // 模型名称
}

// LLMConfig 包含了不同补全模型提供商的配置。
type LLMConfig struct {
	Provider    string       `yaml:"provider"`    // 提供商 (例如: "openai", "ollama")
	MaxTokens   int          `yaml:"maxTokens"`   // 单次回答的最大 token 数
	Temperature float32      `yaml:"temperature"` // 采样温度
	OpenAI      OpenAIConfig `yaml:"openai"`      // OpenAI 模型配置
	Ollama      OllamaConfig `yaml:"ollama"`      // Ollama 模型配置
}

// EmbeddingConfig 包含了不同嵌入模型提供商的配置。
// 注意: 摄取与查询必须使用相同的提供商、模型和维度，
// 否则检索质量会静默下降而没有任何错误信号。
type EmbeddingConfig struct {
	Provider  string       `yaml:"provider"`  // 提供商 (例如: "openai", "ollama")
	Dimension int          `yaml:"dimension"` // 截断后的目标维度 (例如: 1024)
	OpenAI    OpenAIConfig `yaml:"openai"`    // OpenAI 模型配置
	Ollama    OllamaConfig `yaml:"ollama"`    // Ollama 模型配置
}

// IngestConfig 定义了离线摄取脚本的行为。
type IngestConfig struct {
	Prefixes         []string `yaml:"prefixes"`         // 要摄取的对象前缀列表
	BatchSize        int      `yaml:"batchSize"`        // 向量批量写入大小
	ChunkSize        int      `yaml:"chunkSize"`        // 文本分块大小 (字符数)
	ChunkOverlap     int      `yaml:"chunkOverlap"`     // 相邻分块的重叠字符数
	CreateCollection bool     `yaml:"createCollection"` // 集合不存在时是否自动创建
}

// ConvertConfig 定义了文档转换脚本的输入输出前缀。
type ConvertConfig struct {
	InputPrefix  string `yaml:"inputPrefix"`  // 原始文档所在前缀
	OutputPrefix string `yaml:"outputPrefix"` // 生成的 .txt 文件前缀
}

// ScraperConfig 定义了 AACRAO EDGE 爬虫的行为。
type ScraperConfig struct {
	BaseURL         string `yaml:"baseURL"`         // 站点根地址
	Retries         int    `yaml:"retries"`         // 每个页面的抓取尝试次数
	MinDelaySeconds int    `yaml:"minDelaySeconds"` // 请求间最小随机延迟 (秒)
	MaxDelaySeconds int    `yaml:"maxDelaySeconds"` // 请求间最大随机延迟 (秒)
}

// FrontendConfig 定义了终端前端的行为。
type FrontendConfig struct {
	AuthServiceURL string `yaml:"authServiceURL"` // 认证服务地址
	TopK           int    `yaml:"topK"`           // 检索返回的最大结果数
}

// RateLimiterConfig 定义了限流器的配置 (令牌桶算法)。
type RateLimiterConfig struct {
	Enabled  bool    `yaml:"enabled"`
	Rate     float64 `yaml:"rate"`     // 每秒生成的令牌数
	Capacity int     `yaml:"capacity"` // 桶容量 (突发大小)
}

// MiddlewareConfig 包含所有中间件的配置。
type MiddlewareConfig struct {
	RateLimiter RateLimiterConfig `yaml:"rateLimiter"`
}

// AppInfo 对应 'app' 部分，包含应用程序的基本信息。
type AppInfo struct {
	Name        string `yaml:"name"`        // 应用程序名称
	Version     string `yaml:"version"`     // 应用程序版本
	Environment string `yaml:"environment"` // 运行环境 (例如: "development", "production")
}

// LoggerConfig 定义了日志记录器的配置。
type LoggerConfig struct {
	Level string `yaml:"level"` // 日志级别 (例如: "info", "debug", "warn", "error")
}

// AppConfig 是整个 YAML 文件的根结构，包含了应用程序的所有配置。
type AppConfig struct {
	App        AppInfo          `yaml:"app"`        // 应用程序信息
	Auth       AuthConfig       `yaml:"auth"`       // 认证配置
	LLM        LLMConfig        `yaml:"llm"`        // 补全模型配置
	Embedding  EmbeddingConfig  `yaml:"embedding"`  // 嵌入模型配置
	Logger     LoggerConfig     `yaml:"logger"`     // 日志记录器配置
	Databases  DatabaseConfigs  `yaml:"databases"`  // 数据库配置
	Ingest     IngestConfig     `yaml:"ingest"`     // 摄取脚本配置
	Convert    ConvertConfig    `yaml:"convert"`    // 转换脚本配置
	Scraper    ScraperConfig    `yaml:"scraper"`    // 爬虫配置
	Frontend   FrontendConfig   `yaml:"frontend"`   // 前端配置
	Middleware MiddlewareConfig `yaml:"middleware"` // 中间件配置
}

// LoadConfig 函数从指定路径加载并解析 YAML 配置文件。
// 解析之前会先加载项目根目录的 .env 文件（如果存在），
// 并对 YAML 内容中的 ${VAR} 引用进行环境变量展开，
// 这样 API 密钥等敏感信息就不必写入配置文件本身。
func LoadConfig(path string) (*AppConfig, error) {
	// .env 不存在不是错误；环境变量可能已由部署环境注入。
	_ = godotenv.Load()

	// 读取 YAML 文件内容。
	yamlFile, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("无法读取 YAML 文件 '%s': %w", path, err)
	}

	// 展开 ${VAR} 形式的环境变量引用。
	expanded := os.ExpandEnv(string(yamlFile))

	var cfg AppConfig
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("解析 YAML 文件失败: %w", err)
	}
	return &cfg, nil
}
