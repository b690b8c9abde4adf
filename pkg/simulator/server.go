package simulator

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"k8s.io/klog/v2"

	"mbgatectl/pkg/apis/response"
)

// InstallHandler wires the simulated gateway endpoints. The wire contract
// matches the gateway firmware: register bounds are deliberately not checked
// beyond what the simulated bus itself rejects, clients are expected to
// validate before sending.
func InstallHandler(group *gin.RouterGroup, mgr *Manager) {
	group.POST("/modbus/read", readRegisters(mgr))
	group.POST("/modbus/write", writeRegisters(mgr))
	group.GET("/logs", getLogs(mgr))
	group.GET("/status", getStatus(mgr))
}

type readRequestBody struct {
	SlaveID  *uint `json:"slave_id" binding:"required"`
	Address  *uint `json:"address" binding:"required,number,gte=0"`
	Quantity *uint `json:"quantity" binding:"required"`
}

type writeRequestBody struct {
	SlaveID *uint  `json:"slave_id" binding:"required"`
	Address *uint  `json:"address" binding:"required,number,gte=0"`
	Value   *uint  `json:"value"`
	Values  []uint `json:"values"`
}

func readRegisters(mgr *Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		body := &readRequestBody{}
		if err := c.ShouldBindJSON(body); err != nil {
			klog.V(2).InfoS("Failed to parse read request body", "err", err)
			c.JSON(http.StatusBadRequest, response.Failure(response.ErrMalformedJSON))
			return
		}
		slave, address, ok := busTarget(c, *body.SlaveID, *body.Address)
		if !ok {
			return
		}
		values, err := mgr.ReadRegisters(slave, address, *body.Quantity)
		if err != nil {
			klog.V(3).InfoS("Read rejected", "slave", slave, "address", address, "err", err)
			c.JSON(http.StatusOK, response.Failure(busFailure(err, uint(address), *body.Quantity)))
			return
		}
		c.JSON(http.StatusOK, response.ReadReply{
			Success: true,
			SlaveID: slave,
			Address: address,
			Values:  values,
		})
	}
}

func writeRegisters(mgr *Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		body := &writeRequestBody{}
		if err := c.ShouldBindJSON(body); err != nil {
			klog.V(2).InfoS("Failed to parse write request body", "err", err)
			c.JSON(http.StatusBadRequest, response.Failure(response.ErrMalformedJSON))
			return
		}
		// exactly one of value/values selects the single or batch shape
		if (body.Value == nil) == (len(body.Values) == 0) {
			c.JSON(http.StatusBadRequest, response.Failure(response.ErrWriteShape))
			return
		}

		raw := body.Values
		if body.Value != nil {
			raw = []uint{*body.Value}
		}
		values := make([]uint16, len(raw))
		for i, v := range raw {
			values[i] = uint16(v)
		}

		slave, address, ok := busTarget(c, *body.SlaveID, *body.Address)
		if !ok {
			return
		}
		if err := mgr.WriteRegisters(slave, address, values); err != nil {
			klog.V(3).InfoS("Write rejected", "slave", slave, "address", address, "err", err)
			c.JSON(http.StatusOK, response.Failure(busFailure(err, uint(address), uint(len(values)))))
			return
		}
		c.JSON(http.StatusOK, response.WriteReply{
			Success: true,
			SlaveID: slave,
			Address: address,
			Count:   uint16(len(values)),
		})
	}
}

// busTarget narrows wire integers to bus-sized ones. Targets that cannot
// exist on the bus behave like devices that never answer.
func busTarget(c *gin.Context, slave, address uint) (uint8, uint16, bool) {
	if slave > 255 {
		c.JSON(http.StatusOK, response.Failure(response.ErrSlaveUnreachable(fmt.Sprintf("%d", slave))))
		return 0, 0, false
	}
	if address > 65535 {
		c.JSON(http.StatusOK, response.Failure(response.ErrAddressRange(fmt.Sprintf("%d", address), fmt.Sprintf("%d", address))))
		return 0, 0, false
	}
	return uint8(slave), uint16(address), true
}

func busFailure(err error, address, count uint) error {
	switch err {
	case ErrSlaveUnreachable:
		return response.ErrSlaveUnreachable("")
	case ErrAddressRange:
		return response.ErrAddressRange(fmt.Sprintf("%d", address), fmt.Sprintf("%d", address+count-1))
	case ErrQuantityRange:
		return response.ErrQuantityRange(fmt.Sprintf("%d", count))
	}
	return err
}

func getLogs(mgr *Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"entries": mgr.Logs()})
	}
}

func getStatus(mgr *Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, mgr.Status())
	}
}
