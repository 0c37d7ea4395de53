package directory

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"yunke_visitor_server/internal/dao/mysql"
	"yunke_visitor_server/internal/dao/mysql/repository"
	"yunke_visitor_server/internal/dto/request"
	"yunke_visitor_server/internal/service"
	"yunke_visitor_server/pkg/errorx"
)

func newDirectoryTestService(t *testing.T) (service.DirectoryService, *repository.Repositories) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, mysql.Migrate(db))
	repos := repository.NewRepositories(db)
	return NewDirectoryService(repos), repos
}

func TestUpsertVisitor(t *testing.T) {
	svc, _ := newDirectoryTestService(t)

	created, err := svc.UpsertVisitor(request.UpsertVisitorRequest{
		Name: "王访客", Telephone: "13900000001", Email: "wang@example.com",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.Uuid)
	assert.Equal(t, "王访客", created.Name)

	// 同手机号再次提交应复用既有档案，而不是新建一条
	reused, err := svc.UpsertVisitor(request.UpsertVisitorRequest{
		Name: "王访客改名", Telephone: "13900000001",
	})
	require.NoError(t, err)
	assert.Equal(t, created.Uuid, reused.Uuid)
	assert.Equal(t, "王访客改名", reused.Name)

	// 按 uuid 更新
	updated, err := svc.UpsertVisitor(request.UpsertVisitorRequest{
		Uuid: created.Uuid, Name: "王访客", Telephone: "13900000001", FromCompany: "某科技公司",
	})
	require.NoError(t, err)
	assert.Equal(t, created.Uuid, updated.Uuid)
	assert.Equal(t, "某科技公司", updated.FromCompany)

	// 更新不存在的访客
	_, err = svc.UpsertVisitor(request.UpsertVisitorRequest{
		Uuid: "V999999999999999999", Name: "幽灵", Telephone: "13900000002",
	})
	require.Error(t, err)
	assert.Equal(t, errorx.CodeNotFound, errorx.GetCode(err))
}

func TestVisitorBlacklist(t *testing.T) {
	svc, repos := newDirectoryTestService(t)
	created, err := svc.UpsertVisitor(request.UpsertVisitorRequest{
		Name: "王访客", Telephone: "13900000001",
	})
	require.NoError(t, err)

	require.NoError(t, svc.SetVisitorBlacklist(created.Uuid, true))
	stored, err := repos.Visitor.FindByUuid(created.Uuid)
	require.NoError(t, err)
	assert.Equal(t, int8(1), stored.IsBlacklisted)

	require.NoError(t, svc.SetVisitorBlacklist(created.Uuid, false))
	stored, err = repos.Visitor.FindByUuid(created.Uuid)
	require.NoError(t, err)
	assert.Equal(t, int8(0), stored.IsBlacklisted)

	err = svc.SetVisitorBlacklist("V999999999999999999", true)
	require.Error(t, err)
	assert.Equal(t, errorx.CodeNotFound, errorx.GetCode(err))
}

func TestUpsertMember(t *testing.T) {
	svc, repos := newDirectoryTestService(t)
	company, err := svc.UpsertCompany(request.UpsertCompanyRequest{Name: "云科大厦"})
	require.NoError(t, err)

	// 创建必须带密码
	_, err = svc.UpsertMember(request.UpsertMemberRequest{
		CompanyId: company.Uuid, Name: "李成员", Telephone: "13800000001",
	})
	require.Error(t, err)
	assert.Equal(t, errorx.CodeInvalidParam, errorx.GetCode(err))

	created, err := svc.UpsertMember(request.UpsertMemberRequest{
		CompanyId: company.Uuid, Name: "李成员", Telephone: "13800000001",
		Password: "secret123", Department: "工程部",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.Uuid)

	// 密码应以 bcrypt 散列落库
	stored, err := repos.Member.FindByUuid(created.Uuid)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret123")))

	// 手机号唯一
	_, err = svc.UpsertMember(request.UpsertMemberRequest{
		CompanyId: company.Uuid, Name: "张冒名", Telephone: "13800000001", Password: "secret456",
	})
	require.Error(t, err)
	assert.Equal(t, errorx.CodeRecordExist, errorx.GetCode(err))

	// 更新不带密码时保留原密码
	updated, err := svc.UpsertMember(request.UpsertMemberRequest{
		Uuid: created.Uuid, CompanyId: company.Uuid, Name: "李成员",
		Telephone: "13800000001", Position: "主管",
	})
	require.NoError(t, err)
	assert.Equal(t, "主管", updated.Position)
	stored, err = repos.Member.FindByUuid(created.Uuid)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret123")))

	// 挂到不存在的企业
	_, err = svc.UpsertMember(request.UpsertMemberRequest{
		CompanyId: "C999999999999999999", Name: "李成员", Telephone: "13800000002", Password: "secret123",
	})
	require.Error(t, err)
	assert.Equal(t, errorx.CodeNotFound, errorx.GetCode(err))
}

func TestCompanyAndMemberList(t *testing.T) {
	svc, _ := newDirectoryTestService(t)
	company, err := svc.UpsertCompany(request.UpsertCompanyRequest{Name: "云科大厦", Address: "高新区"})
	require.NoError(t, err)

	for i := 1; i <= 2; i++ {
		_, err = svc.UpsertMember(request.UpsertMemberRequest{
			CompanyId: company.Uuid, Name: fmt.Sprintf("成员%d", i),
			Telephone: fmt.Sprintf("1380000000%d", i), Password: "secret123",
		})
		require.NoError(t, err)
	}

	members, err := svc.GetMembersByCompany(company.Uuid)
	require.NoError(t, err)
	assert.Len(t, members, 2)

	companies, err := svc.GetCompanyList(1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), companies.Total)

	// 软删除后从列表消失
	require.NoError(t, svc.DeleteMember(members[0].Uuid))
	members, err = svc.GetMembersByCompany(company.Uuid)
	require.NoError(t, err)
	assert.Len(t, members, 1)
}
