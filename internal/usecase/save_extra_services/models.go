package save_extra_services

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

// Request модель запроса на сохранение доп. услуг
type Request struct {
	Record domain.HostRecord    // Запись в состоянии до редактирования
	Draft  domain.ExtraServices // Новый набор доп. услуг
}

// Response модель ответа после успешного сохранения
type Response struct {
	Record   domain.HostRecord // Запись после слияния с ответом хранилища
	Total    decimal.Decimal   // Сумма доп. услуг черновика
	NewPrice *decimal.Decimal  // Новая цена (только для месячных клиентов)
}
